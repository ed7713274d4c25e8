package store

import (
	"context"
	"testing"

	"vidtube/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockStore(mt *mtest.T) *PostStore {
	return NewPostStore(mt.Coll, mt.DB.Collection("users"))
}

func postDoc(id, owner primitive.ObjectID, likes, dislikes []primitive.ObjectID) bson.D {
	likesArr := bson.A{}
	for _, l := range likes {
		likesArr = append(likesArr, l)
	}
	dislikesArr := bson.A{}
	for _, d := range dislikes {
		dislikesArr = append(dislikesArr, d)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: owner},
		{Key: "title", Value: "Test"},
		{Key: "videoUrl", Value: "https://x/video.mp4"},
		{Key: "likeCount", Value: len(likes)},
		{Key: "dislikeCount", Value: len(dislikes)},
		{Key: "likes", Value: likesArr},
		{Key: "dislikes", Value: dislikesArr},
		{Key: "comments", Value: bson.A{}},
	}
}

func TestToggleLike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	postID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	user := primitive.NewObjectID()

	mt.Run("fresh like", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(postID, owner, []primitive.ObjectID{user}, nil)},
		))

		engagement, err := s.ToggleLike(context.Background(), postID, user)
		require.NoError(mt, err)
		assert.Equal(mt, models.Engagement{LikeCount: 1, DislikeCount: 0, IsLiked: true, IsDisliked: false}, engagement)
	})

	mt.Run("unlike returns to original state", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(postID, owner, nil, nil)},
		))

		engagement, err := s.ToggleLike(context.Background(), postID, user)
		require.NoError(mt, err)
		assert.Equal(mt, models.Engagement{LikeCount: 0, DislikeCount: 0, IsLiked: false, IsDisliked: false}, engagement)
	})

	mt.Run("like after dislike clears the dislike", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(postID, owner, []primitive.ObjectID{user}, nil)},
		))

		engagement, err := s.ToggleLike(context.Background(), postID, user)
		require.NoError(mt, err)
		assert.Equal(mt, 1, engagement.LikeCount)
		assert.Equal(mt, 0, engagement.DislikeCount)
		assert.True(mt, engagement.IsLiked)
		assert.False(mt, engagement.IsDisliked)
	})

	mt.Run("post not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := s.ToggleLike(context.Background(), postID, user)
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestToggleDislike(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	postID := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	user := primitive.NewObjectID()

	mt.Run("fresh dislike", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: postDoc(postID, owner, nil, []primitive.ObjectID{user})},
		))

		engagement, err := s.ToggleDislike(context.Background(), postID, user)
		require.NoError(mt, err)
		assert.Equal(mt, models.Engagement{LikeCount: 0, DislikeCount: 1, IsLiked: false, IsDisliked: true}, engagement)
	})
}

func TestCreateValidation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	owner := primitive.NewObjectID()

	mt.Run("missing title", func(mt *mtest.T) {
		s := newMockStore(mt)
		_, err := s.Create(context.Background(), owner, "  ", "", "https://x/video.mp4")
		assert.ErrorIs(mt, err, ErrMissingField)
	})

	mt.Run("missing video url", func(mt *mtest.T) {
		s := newMockStore(mt)
		_, err := s.Create(context.Background(), owner, "Test", "", "")
		assert.ErrorIs(mt, err, ErrMissingField)
	})

	mt.Run("owner vanished", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vidtube.users", mtest.FirstBatch))

		_, err := s.Create(context.Background(), owner, "Test", "", "https://x/video.mp4")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("fresh post starts with zero engagement", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "vidtube.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: owner},
				{Key: "username", Value: "u1"},
				{Key: "profilePicture", Value: ""},
			}),
			mtest.CreateSuccessResponse(),
		)

		post, err := s.Create(context.Background(), owner, "Test", "", "https://x/video.mp4")
		require.NoError(mt, err)
		assert.Equal(mt, 0, post.LikeCount)
		assert.Equal(mt, 0, post.DislikeCount)
		assert.Empty(mt, post.Comments)
		assert.Equal(mt, owner, post.UserID)
		require.NotNil(mt, post.User)
		assert.Equal(mt, "u1", post.User.Username)
	})
}

func TestAddComment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	postID := primitive.NewObjectID()
	user := primitive.NewObjectID()

	mt.Run("empty comment rejected before any write", func(mt *mtest.T) {
		s := newMockStore(mt)
		_, err := s.AddComment(context.Background(), postID, user, "   ")
		assert.ErrorIs(mt, err, ErrEmptyComment)
	})

	mt.Run("appends trimmed comment with author", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
			mtest.CreateCursorResponse(1, "vidtube.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: user},
				{Key: "username", Value: "u2"},
				{Key: "profilePicture", Value: ""},
			}),
		)

		comment, err := s.AddComment(context.Background(), postID, user, "  nice video  ")
		require.NoError(mt, err)
		assert.Equal(mt, "nice video", comment.Comment)
		assert.Equal(mt, user, comment.UserID)
		assert.NotZero(mt, comment.CreatedAt)
		require.NotNil(mt, comment.User)
		assert.Equal(mt, "u2", comment.User.Username)
	})

	mt.Run("post not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		_, err := s.AddComment(context.Background(), postID, user, "hello")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestComments(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	postID := primitive.NewObjectID()
	u1 := primitive.NewObjectID()
	u2 := primitive.NewObjectID()

	mt.Run("insertion order preserved with authors resolved", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "vidtube.posts", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: postID},
				{Key: "comments", Value: bson.A{
					bson.D{{Key: "comment", Value: "first"}, {Key: "userId", Value: u1}, {Key: "createdAt", Value: int64(100)}},
					bson.D{{Key: "comment", Value: "second"}, {Key: "userId", Value: u2}, {Key: "createdAt", Value: int64(200)}},
				}},
			}),
			mtest.CreateCursorResponse(1, "vidtube.users", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: u1}, {Key: "username", Value: "alice"}},
			),
			mtest.CreateCursorResponse(0, "vidtube.users", mtest.NextBatch,
				bson.D{{Key: "_id", Value: u2}, {Key: "username", Value: "bob"}},
			),
		)

		comments, err := s.Comments(context.Background(), postID)
		require.NoError(mt, err)
		require.Len(mt, comments, 2)
		assert.Equal(mt, "first", comments[0].Comment)
		assert.Equal(mt, "second", comments[1].Comment)
		require.NotNil(mt, comments[0].User)
		assert.Equal(mt, "alice", comments[0].User.Username)
		require.NotNil(mt, comments[1].User)
		assert.Equal(mt, "bob", comments[1].User.Username)
	})

	mt.Run("post not found", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vidtube.posts", mtest.FirstBatch))

		_, err := s.Comments(context.Background(), postID)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("no comments yet", func(mt *mtest.T) {
		s := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "vidtube.posts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: postID},
			{Key: "comments", Value: bson.A{}},
		}))

		comments, err := s.Comments(context.Background(), postID)
		require.NoError(mt, err)
		assert.Empty(mt, comments)
	})
}

func TestSearchValidation(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("blank query rejected", func(mt *mtest.T) {
		s := newMockStore(mt)
		_, err := s.Search(context.Background(), "   ", 1, 10)
		assert.ErrorIs(mt, err, ErrMissingField)
	})
}
