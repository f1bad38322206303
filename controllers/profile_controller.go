package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devlinkhq/devlink/models"
	"github.com/devlinkhq/devlink/utils"
)

// ProfileController manages profile records and their experience/education
// sub-lists. List mutations are read-modify-save on the whole profile row;
// concurrent writers race and the last write wins, per store semantics.
type ProfileController struct {
	db *gorm.DB
}

// NewProfileController creates a ProfileController.
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{db: db}
}

// GetMyProfile returns the caller's profile with the linked user joined in.
func (p *ProfileController) GetMyProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var profile models.Profile
	err := p.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorMessage(ctx, http.StatusNotFound, "No profile for this user")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpsertProfile creates the caller's profile or sparse-merges the supplied
// fields into the existing one. Absent optional fields are never cleared.
func (p *ProfileController) UpsertProfile(ctx *gin.Context) {
	type request struct {
		Company        string `json:"company"`
		Website        string `json:"website"`
		Location       string `json:"location"`
		Status         string `json:"status" binding:"required"`
		Skills         string `json:"skills" binding:"required"`
		Bio            string `json:"bio"`
		GithubUsername string `json:"githubusername"`
		Youtube        string `json:"youtube"`
		Twitter        string `json:"twitter"`
		Facebook       string `json:"facebook"`
		Linkedin       string `json:"linkedin"`
		Instagram      string `json:"instagram"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var profile models.Profile
	err := p.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ServerError(ctx, err)
		return
	}

	profile.UserID = userID
	applyProfileFields(&profile, req.Company, req.Website, req.Location, req.Status, req.Skills, req.Bio, req.GithubUsername)

	if social := buildSocial(req.Youtube, req.Twitter, req.Facebook, req.Linkedin, req.Instagram); social != nil {
		profile.Social = social
	}

	if err := p.db.Save(&profile).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	// Reload so the response carries the joined user, not a zero value.
	if err := p.db.Preload("User").First(&profile, profile.ID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:profiles:")
	ctx.JSON(http.StatusOK, profile)
}

// ListProfiles returns every profile with the linked user joined in. Public.
func (p *ProfileController) ListProfiles(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes("cache:profiles:list"); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var profiles []models.Profile
	if err := p.db.Preload("User").Find(&profiles).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.CacheSetJSON("cache:profiles:list", profiles, time.Hour)
	ctx.JSON(http.StatusOK, profiles)
}

// GetProfileByUser returns one profile by its owner's user id. Public.
func (p *ProfileController) GetProfileByUser(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Param("user_id"))
	if b, ok := utils.CacheGetBytes("cache:profiles:user:" + userID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var profile models.Profile
	err := p.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorMessage(ctx, http.StatusNotFound, "Profile not available")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	utils.CacheSetJSON("cache:profiles:user:"+userID, profile, time.Hour)
	ctx.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's profile and then the user record. The
// two deletes are sequential with no transaction; a failure in between
// leaves an orphaned user, which reads tolerate as "no profile".
func (p *ProfileController) DeleteAccount(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	if err := p.db.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}
	if err := p.db.Delete(&models.User{}, userID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:profiles:")
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// AddExperience prepends a new experience entry to the caller's profile.
func (p *ProfileController) AddExperience(ctx *gin.Context) {
	type request struct {
		Title       string `json:"title" binding:"required"`
		Company     string `json:"company" binding:"required"`
		Location    string `json:"location"`
		From        string `json:"from" binding:"required"`
		To          string `json:"to"`
		Current     bool   `json:"current"`
		Description string `json:"description"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	p.mutateProfile(ctx, func(profile *models.Profile) {
		entry := models.Experience{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Company:     req.Company,
			Location:    req.Location,
			From:        req.From,
			To:          req.To,
			Current:     req.Current,
			Description: req.Description,
		}
		profile.Experience = append([]models.Experience{entry}, profile.Experience...)
	})
}

// DeleteExperience removes an experience entry by its sub-id. A miss is a
// no-op save, not an error.
func (p *ProfileController) DeleteExperience(ctx *gin.Context) {
	expID := ctx.Param("exp_id")
	p.mutateProfile(ctx, func(profile *models.Profile) {
		kept := profile.Experience[:0]
		for _, e := range profile.Experience {
			if e.ID != expID {
				kept = append(kept, e)
			}
		}
		profile.Experience = kept
	})
}

// AddEducation prepends a new education entry to the caller's profile.
func (p *ProfileController) AddEducation(ctx *gin.Context) {
	type request struct {
		School       string `json:"school" binding:"required"`
		Degree       string `json:"degree" binding:"required"`
		FieldOfStudy string `json:"fieldofstudy" binding:"required"`
		From         string `json:"from" binding:"required"`
		To           string `json:"to"`
		Current      bool   `json:"current"`
		Description  string `json:"description"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	p.mutateProfile(ctx, func(profile *models.Profile) {
		entry := models.Education{
			ID:           uuid.NewString(),
			School:       req.School,
			Degree:       req.Degree,
			FieldOfStudy: req.FieldOfStudy,
			From:         req.From,
			To:           req.To,
			Current:      req.Current,
			Description:  req.Description,
		}
		profile.Education = append([]models.Education{entry}, profile.Education...)
	})
}

// DeleteEducation removes an education entry by its sub-id, no-op on a miss.
func (p *ProfileController) DeleteEducation(ctx *gin.Context) {
	eduID := ctx.Param("edu_id")
	p.mutateProfile(ctx, func(profile *models.Profile) {
		kept := profile.Education[:0]
		for _, e := range profile.Education {
			if e.ID != eduID {
				kept = append(kept, e)
			}
		}
		profile.Education = kept
	})
}

// mutateProfile loads the caller's profile, applies fn and saves the whole
// row back, then responds with the updated profile.
func (p *ProfileController) mutateProfile(ctx *gin.Context, fn func(*models.Profile)) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var profile models.Profile
	if err := p.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	fn(&profile)

	// The joined user is response-only; keep the save scoped to the profile row.
	if err := p.db.Omit("User").Save(&profile).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:profiles:")
	ctx.JSON(http.StatusOK, profile)
}

// applyProfileFields copies only the supplied fields onto the profile.
func applyProfileFields(profile *models.Profile, company, website, location, status, skills, bio, github string) {
	if company != "" {
		profile.Company = company
	}
	if website != "" {
		profile.Website = website
	}
	if location != "" {
		profile.Location = location
	}
	if status != "" {
		profile.Status = status
	}
	if skills != "" {
		profile.Skills = splitSkills(skills)
	}
	if bio != "" {
		profile.Bio = utils.Sanitize(bio)
	}
	if github != "" {
		profile.GithubUsername = github
	}
}

func buildSocial(youtube, twitter, facebook, linkedin, instagram string) *models.SocialLinks {
	if youtube == "" && twitter == "" && facebook == "" && linkedin == "" && instagram == "" {
		return nil
	}
	return &models.SocialLinks{
		Youtube:   youtube,
		Twitter:   twitter,
		Facebook:  facebook,
		Linkedin:  linkedin,
		Instagram: instagram,
	}
}

// splitSkills turns a comma separated string into an ordered list of trimmed entries.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}
