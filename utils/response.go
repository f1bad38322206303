package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError reports one failed validation rule with field-level detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorMessage writes a {"message": ...} error body with the given status.
func ErrorMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// Errors writes an {"errors": ...} error body; used for credential failures
// where the message is deliberately generic.
func Errors(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"errors": message})
}

// ValidationFailed translates a binding error into a 400 response carrying
// per-field detail when the error came from the validator.
func ValidationFailed(ctx *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}
	ctx.JSON(http.StatusBadRequest, gin.H{"errors": "Invalid request payload"})
}

// ServerError writes the uniform 500 body and logs the cause.
func ServerError(ctx *gin.Context, err error) {
	Sugar.Errorw("server error", "path", ctx.FullPath(), "err", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return fe.Field() + " is too short"
	default:
		return fe.Field() + " is invalid"
	}
}
