package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vidtube/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddPostRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" binding:"required"`
}

type UpdatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"videoUrl"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func AddPost(c *gin.Context) {
	var req AddPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and video URL are required"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := posts.Create(ctx, userID, req.Title, req.Description, req.VideoURL)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		respondStoreError(c, "AddPost", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetMyPosts lists the caller's own uploads, newest-first.
func GetMyPosts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := pageParams(c)
	result, err := posts.ByOwner(ctx, userID, page, limit)
	if err != nil {
		respondStoreError(c, "GetMyPosts", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetChannelPosts lists another user's uploads for their channel page.
func GetChannelPosts(c *gin.Context) {
	ownerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := pageParams(c)
	result, err := posts.ByOwner(ctx, ownerID, page, limit)
	if err != nil {
		respondStoreError(c, "GetChannelPosts", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFeed lists all posts, newest-first.
func GetFeed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := pageParams(c)
	result, err := posts.All(ctx, page, limit)
	if err != nil {
		respondStoreError(c, "GetFeed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := posts.ByID(ctx, postID)
	if err != nil {
		respondStoreError(c, "GetPost", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func SearchPosts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := pageParams(c)
	result, err := posts.Search(ctx, query, page, limit)
	if err != nil {
		respondStoreError(c, "SearchPosts", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func UpdatePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	post, err := posts.Update(ctx, postID, userID, store.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		respondStoreError(c, "UpdatePost", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func DeletePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := posts.Delete(ctx, postID, userID); err != nil {
		respondStoreError(c, "DeletePost", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func ToggleLike(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	engagement, err := posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		respondStoreError(c, "ToggleLike", err)
		return
	}

	c.JSON(http.StatusOK, engagement)
}

func ToggleDislike(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	engagement, err := posts.ToggleDislike(ctx, postID, userID)
	if err != nil {
		respondStoreError(c, "ToggleDislike", err)
		return
	}

	c.JSON(http.StatusOK, engagement)
}

func AddComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	comment, err := posts.AddComment(ctx, postID, userID, req.Comment)
	if err != nil {
		respondStoreError(c, "AddComment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func GetComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	comments, err := posts.Comments(ctx, postID)
	if err != nil {
		respondStoreError(c, "GetComments", err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
