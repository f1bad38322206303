package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/models"
)

func createPost(t *testing.T, r *gin.Engine, token, text string) models.Post {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/post", token, map[string]string{"text": text})
	require.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	decodeBody(t, w, &post)
	return post
}

func TestCreatePost_SnapshotsAuthorIdentity(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")

	post := createPost(t, r, tokenFor(t, user.ID), "hello world")
	assert.Equal(t, user.ID, post.UserID)
	assert.Equal(t, "Uma", post.Name)
	assert.Equal(t, user.Avatar, post.Avatar)
	assert.Equal(t, "hello world", post.Text)
	assert.NotZero(t, post.ID)
}

func TestCreatePost_RequiresText(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/post", tokenFor(t, user.ID), map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Text")
}

func TestListPosts_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")
	token := tokenFor(t, user.ID)

	createPost(t, r, token, "first")
	createPost(t, r, token, "second")

	w := doJSON(r, http.MethodGet, "/api/post", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []models.Post
	decodeBody(t, w, &posts)
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Text)
	assert.Equal(t, "first", posts[1].Text)
}

func TestGetPost_ByIDAndNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")
	token := tokenFor(t, user.ID)
	post := createPost(t, r, token, "hello")

	w := doJSON(r, http.MethodGet, "/api/post/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Post
	decodeBody(t, w, &got)
	assert.Equal(t, post.ID, got.ID)

	w = doJSON(r, http.MethodGet, "/api/post/999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Post not found"}`, w.Body.String())
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	author := createUser(t, db, "Uma", "u@x.com", "secret1")
	other := createUser(t, db, "Bob", "b@x.com", "secret1")
	post := createPost(t, r, tokenFor(t, author.ID), "mine")

	w := doJSON(r, http.MethodDelete, "/api/post/1", tokenFor(t, other.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message": "User not authorized"}`, w.Body.String())

	// The post survives the rejected attempt.
	var count int64
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	w = doJSON(r, http.MethodDelete, "/api/post/1", tokenFor(t, author.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Post removed successfully"}`, w.Body.String())
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletePost_NotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")

	w := doJSON(r, http.MethodDelete, "/api/post/42", tokenFor(t, user.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Post not found"}`, w.Body.String())
}

func TestLikePost_OncePerUser(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	author := createUser(t, db, "Uma", "u@x.com", "secret1")
	liker := createUser(t, db, "Bob", "b@x.com", "secret1")
	createPost(t, r, tokenFor(t, author.ID), "likeable")
	token := tokenFor(t, liker.ID)

	w := doJSON(r, http.MethodPut, "/api/post/like/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes []models.Like
	decodeBody(t, w, &likes)
	require.Len(t, likes, 1)
	assert.Equal(t, liker.ID, likes[0].UserID)

	w = doJSON(r, http.MethodPut, "/api/post/like/1", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message": "Post already liked"}`, w.Body.String())

	var post models.Post
	require.NoError(t, db.First(&post, 1).Error)
	assert.Len(t, post.Likes, 1)
}

func TestLikePost_NewestLikeFirst(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	author := createUser(t, db, "Uma", "u@x.com", "secret1")
	bob := createUser(t, db, "Bob", "b@x.com", "secret1")
	createPost(t, r, tokenFor(t, author.ID), "popular")

	doJSON(r, http.MethodPut, "/api/post/like/1", tokenFor(t, author.ID), nil)
	w := doJSON(r, http.MethodPut, "/api/post/like/1", tokenFor(t, bob.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var likes []models.Like
	decodeBody(t, w, &likes)
	require.Len(t, likes, 2)
	assert.Equal(t, bob.ID, likes[0].UserID)
	assert.Equal(t, author.ID, likes[1].UserID)
}

func TestCreateComment_PrependsWithSnapshot(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	author := createUser(t, db, "Uma", "u@x.com", "secret1")
	bob := createUser(t, db, "Bob", "b@x.com", "secret1")
	createPost(t, r, tokenFor(t, author.ID), "discuss")

	w := doJSON(r, http.MethodPut, "/api/post/comment/1", tokenFor(t, author.ID), map[string]string{"text": "first"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPut, "/api/post/comment/1", tokenFor(t, bob.ID), map[string]string{"text": "second"})
	require.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	decodeBody(t, w, &comments)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].Name)
	assert.Equal(t, bob.ID, comments[0].UserID)
	assert.NotEmpty(t, comments[0].ID)
	assert.Equal(t, "first", comments[1].Text)
}

func TestCreateComment_RequiresText(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	user := createUser(t, db, "Uma", "u@x.com", "secret1")
	createPost(t, r, tokenFor(t, user.ID), "quiet")

	w := doJSON(r, http.MethodPut, "/api/post/comment/1", tokenFor(t, user.ID), map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteComment(t *testing.T) {
	db := setupTestDB(t)
	r := newAPIRouter(db)
	author := createUser(t, db, "Uma", "u@x.com", "secret1")
	bob := createUser(t, db, "Bob", "b@x.com", "secret1")
	createPost(t, r, tokenFor(t, author.ID), "thread")

	doJSON(r, http.MethodPut, "/api/post/comment/1", tokenFor(t, author.ID), map[string]string{"text": "keep"})
	doJSON(r, http.MethodPut, "/api/post/comment/1", tokenFor(t, bob.ID), map[string]string{"text": "drop"})

	var post models.Post
	require.NoError(t, db.First(&post, 1).Error)
	require.Len(t, post.Comments, 2)
	bobComment := post.Comments[0]
	require.Equal(t, bob.ID, bobComment.UserID)

	// Unknown comment id.
	w := doJSON(r, http.MethodDelete, "/api/post/comment/1/no-such-id", tokenFor(t, bob.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Comment does not exist"}`, w.Body.String())

	// Someone else's comment.
	w = doJSON(r, http.MethodDelete, "/api/post/comment/1/"+bobComment.ID, tokenFor(t, author.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message": "User not authorized"}`, w.Body.String())

	// The comment's author removes it; the other comment stays.
	w = doJSON(r, http.MethodDelete, "/api/post/comment/1/"+bobComment.ID, tokenFor(t, bob.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Comments []models.Comment `json:"comments"`
	}
	decodeBody(t, w, &body)
	require.Len(t, body.Comments, 1)
	assert.Equal(t, "keep", body.Comments[0].Text)
}
