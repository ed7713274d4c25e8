package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"vidtube/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var posts *store.PostStore

// SetPostStore wires the engagement store; called once from main.
func SetPostStore(s *store.PostStore) {
	posts = s
}

// currentUserID reads the authenticated user id injected by the JWT
// middleware. A failure here means the token carried a malformed id.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func postIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return primitive.NilObjectID, false
	}
	return postID, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageSize)))
	return page, limit
}

// respondStoreError maps the store's error taxonomy onto HTTP statuses.
// Anything unrecognized is logged in full and reported generically.
func respondStoreError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, store.ErrMissingField), errors.Is(err, store.ErrEmptyComment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this post"})
	default:
		log.Printf("%s error: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
