package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID   `bson:"userId" json:"userId"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description,omitempty" json:"description"`
	VideoURL     string               `bson:"videoUrl" json:"videoUrl"`
	LikeCount    int                  `bson:"likeCount" json:"likeCount"`
	DislikeCount int                  `bson:"dislikeCount" json:"dislikeCount"`
	Likes        []primitive.ObjectID `bson:"likes" json:"-"`
	Dislikes     []primitive.ObjectID `bson:"dislikes" json:"-"`
	Comments     []Comment            `bson:"comments" json:"comments,omitempty"`
	CreatedAt    int64                `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64                `bson:"updatedAt" json:"updatedAt"`
	User         *Author              `bson:"user,omitempty" json:"user,omitempty"` // populated in responses only
}

// Comment lives embedded in its parent post; it has no identity of its own
// and is removed only when the post is deleted.
type Comment struct {
	Comment   string             `bson:"comment" json:"comment"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	User      *Author            `bson:"-" json:"user,omitempty"`
}

// Engagement is what a like/dislike toggle hands back so the client can
// update its view without re-fetching the post.
type Engagement struct {
	LikeCount    int  `json:"likeCount"`
	DislikeCount int  `json:"dislikeCount"`
	IsLiked      bool `json:"isLiked"`
	IsDisliked   bool `json:"isDisliked"`
}
