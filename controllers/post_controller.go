package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/devlinkhq/devlink/models"
	"github.com/devlinkhq/devlink/utils"
)

// PostController manages the post feed with its like and comment sub-lists.
// Like/comment mutations are read-modify-save on the whole post row, so
// concurrent mutations of the same post race (last write wins).
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost stores a new post with the author's name and avatar snapshotted
// at creation time.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	post := models.Post{
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   utils.Sanitize(req.Text),
	}

	if err := p.db.Create(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, post)
}

// ListPosts returns all posts, newest first.
func (p *PostController) ListPosts(ctx *gin.Context) {
	var posts []models.Post
	if err := p.db.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by id.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")
	if b, ok := utils.CacheGetBytes("cache:posts:detail:" + postID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var post models.Post
	if err := p.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorMessage(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	utils.CacheSetJSON("cache:posts:detail:"+postID, post, time.Hour)
	ctx.JSON(http.StatusOK, post)
}

// DeletePost removes a post; only its author may do so.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("id")
	var post models.Post
	if err := p.db.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorMessage(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	if post.UserID != userID {
		utils.ErrorMessage(ctx, http.StatusForbidden, "User not authorized")
		return
	}

	if err := p.db.Delete(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:")
	ctx.JSON(http.StatusOK, gin.H{"message": "Post removed successfully"})
}

// LikePost prepends a like for the caller; a second like by the same user is
// rejected and leaves the list untouched.
func (p *PostController) LikePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var post models.Post
	if err := p.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			utils.ErrorMessage(ctx, http.StatusBadRequest, "Post already liked")
			return
		}
	}

	post.Likes = append([]models.Like{{UserID: userID}}, post.Likes...)

	if err := p.db.Save(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:detail:" + strconv.Itoa(int(post.ID)))
	ctx.JSON(http.StatusOK, post.Likes)
}

// CreateComment prepends a comment with the caller's name and avatar
// snapshotted at comment time.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, err)
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var post models.Post
	if err := p.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	var user models.User
	if err := p.db.First(&user, userID).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	comment := models.Comment{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   user.Name,
		Avatar: user.Avatar,
		Text:   utils.Sanitize(req.Text),
		Date:   time.Now(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := p.db.Save(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:detail:" + strconv.Itoa(int(post.ID)))
	ctx.JSON(http.StatusOK, post.Comments)
}

// DeleteComment removes one comment by id; only its author may do so. A
// missing comment id is NotFound, distinct from the forbidden case.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
		return
	}

	var post models.Post
	if err := p.db.First(&post, "id = ?", ctx.Param("id")).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	commentID := ctx.Param("comment_id")
	idx := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		utils.ErrorMessage(ctx, http.StatusNotFound, "Comment does not exist")
		return
	}

	if post.Comments[idx].UserID != userID {
		utils.ErrorMessage(ctx, http.StatusForbidden, "User not authorized")
		return
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	if err := p.db.Save(&post).Error; err != nil {
		utils.ServerError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:detail:" + strconv.Itoa(int(post.ID)))
	ctx.JSON(http.StatusOK, gin.H{"comments": post.Comments})
}
