package store

import (
	"context"
	"regexp"
	"strings"
	"time"

	"vidtube/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxDescriptionLen = 5000

// DefaultPageSize bounds list queries; callers may ask for less but not more.
const DefaultPageSize = 20
const maxPageSize = 50

// PostStore owns the posts collection and every mutation that touches
// engagement state. All writes are single-document atomic operations so
// concurrent requests against the same post never lose updates.
type PostStore struct {
	posts *mongo.Collection
	users *mongo.Collection
}

func NewPostStore(posts, users *mongo.Collection) *PostStore {
	return &PostStore{posts: posts, users: users}
}

// UpdateFields carries the mutable top-level post fields. Nil means
// "leave unchanged"; comments and like/dislike state are never touched here.
type UpdateFields struct {
	Title       *string
	Description *string
	VideoURL    *string
}

func (s *PostStore) Create(ctx context.Context, ownerID primitive.ObjectID, title, description, videoURL string) (*models.Post, error) {
	title = strings.TrimSpace(title)
	videoURL = strings.TrimSpace(videoURL)
	if title == "" || videoURL == "" {
		return nil, ErrMissingField
	}
	if len(description) > maxDescriptionLen {
		description = description[:maxDescriptionLen]
	}

	var author models.Author
	err := s.users.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&author)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	post := models.Post{
		ID:          primitive.NewObjectID(),
		UserID:      ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		VideoURL:    videoURL,
		Likes:       []primitive.ObjectID{},
		Dislikes:    []primitive.ObjectID{},
		Comments:    []models.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	post.User = &author
	return &post, nil
}

func (s *PostStore) ByID(ctx context.Context, postID primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var author models.Author
	if err := s.users.FindOne(ctx, bson.M{"_id": post.UserID}).Decode(&author); err == nil {
		post.User = &author
	}
	return &post, nil
}

// All returns the global feed, newest-first.
func (s *PostStore) All(ctx context.Context, page, limit int) ([]models.Post, error) {
	return s.list(ctx, bson.D{}, page, limit)
}

// ByOwner returns one user's uploads, newest-first.
func (s *PostStore) ByOwner(ctx context.Context, ownerID primitive.ObjectID, page, limit int) ([]models.Post, error) {
	return s.list(ctx, bson.D{{Key: "userId", Value: ownerID}}, page, limit)
}

// Search matches the query case-insensitively against title and description.
func (s *PostStore) Search(ctx context.Context, query string, page, limit int) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingField
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.M{"title": re},
		bson.M{"description": re},
	}}}
	return s.list(ctx, filter, page, limit)
}

func (s *PostStore) list(ctx context.Context, match bson.D, page, limit int) ([]models.Post, error) {
	page, limit = clampPage(page, limit)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := s.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update edits title/description/videoUrl. Only the owner may edit; the
// ownership check rides on the update filter so the mutation stays a single
// conditional write.
func (s *PostStore) Update(ctx context.Context, postID, requesterID primitive.ObjectID, fields UpdateFields) (*models.Post, error) {
	set := bson.M{"updatedAt": time.Now().Unix()}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if title == "" {
			return nil, ErrMissingField
		}
		set["title"] = title
	}
	if fields.Description != nil {
		desc := strings.TrimSpace(*fields.Description)
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		set["description"] = desc
	}
	if fields.VideoURL != nil {
		videoURL := strings.TrimSpace(*fields.VideoURL)
		if videoURL == "" {
			return nil, ErrMissingField
		}
		set["videoUrl"] = videoURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "userId": requesterID},
		bson.M{"$set": set},
		opts,
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, s.missingOrForbidden(ctx, postID)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post and everything embedded in it. Owner only.
func (s *PostStore) Delete(ctx context.Context, postID, requesterID primitive.ObjectID) error {
	result, err := s.posts.DeleteOne(ctx, bson.M{"_id": postID, "userId": requesterID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return s.missingOrForbidden(ctx, postID)
	}
	return nil
}

// missingOrForbidden disambiguates a zero-match owner-filtered write.
func (s *PostStore) missingOrForbidden(ctx context.Context, postID primitive.ObjectID) error {
	count, err := s.posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}

// ToggleLike flips the caller's like on the post. Liking clears any prior
// dislike; liking again unlikes. The whole transition is one pipeline update
// applied server-side, so concurrent toggles on the same post never
// interleave a stale read with a write.
func (s *PostStore) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (models.Engagement, error) {
	return s.toggle(ctx, postID, userID, "likes", "dislikes")
}

// ToggleDislike is the mirror of ToggleLike.
func (s *PostStore) ToggleDislike(ctx context.Context, postID, userID primitive.ObjectID) (models.Engagement, error) {
	return s.toggle(ctx, postID, userID, "dislikes", "likes")
}

func (s *PostStore) toggle(ctx context.Context, postID, userID primitive.ObjectID, target, opposite string) (models.Engagement, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		togglePipeline(userID, target, opposite),
		opts,
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return models.Engagement{}, ErrNotFound
	}
	if err != nil {
		return models.Engagement{}, err
	}
	return engagementOf(&post, userID), nil
}

// togglePipeline builds the aggregation-pipeline update for one toggle.
// If userID is already in target, it is removed (un-toggle, opposite
// untouched). Otherwise it is added to target and removed from opposite,
// which keeps a user in at most one of the two sets. The second stage
// rederives both counters from array sizes, so counts can never drift from
// set cardinality.
func togglePipeline(userID primitive.ObjectID, target, opposite string) mongo.Pipeline {
	isMember := bson.M{"$in": bson.A{userID, "$" + target}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			target: bson.M{"$cond": bson.A{
				isMember,
				bson.M{"$setDifference": bson.A{"$" + target, bson.A{userID}}},
				bson.M{"$setUnion": bson.A{"$" + target, bson.A{userID}}},
			}},
			opposite: bson.M{"$cond": bson.A{
				isMember,
				"$" + opposite,
				bson.M{"$setDifference": bson.A{"$" + opposite, bson.A{userID}}},
			}},
		}}},
		{{Key: "$set", Value: bson.M{
			"likeCount":    bson.M{"$size": "$likes"},
			"dislikeCount": bson.M{"$size": "$dislikes"},
			"updatedAt":    time.Now().Unix(),
		}}},
	}
}

// engagementOf projects a post's engagement state from one user's viewpoint.
func engagementOf(p *models.Post, userID primitive.ObjectID) models.Engagement {
	return models.Engagement{
		LikeCount:    p.LikeCount,
		DislikeCount: p.DislikeCount,
		IsLiked:      containsID(p.Likes, userID),
		IsDisliked:   containsID(p.Dislikes, userID),
	}
}

// AddComment appends one comment to the post. Validation happens before any
// I/O; the append itself is a single atomic $push.
func (s *PostStore) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	comment := models.Comment{
		Comment:   text,
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
	}

	result, err := s.posts.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": comment.CreatedAt},
	})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}

	var author models.Author
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Decode(&author); err == nil {
		comment.User = &author
	}
	return &comment, nil
}

// Comments returns the post's embedded comment list in insertion order with
// author display info resolved.
func (s *PostStore) Comments(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.FindOne().SetProjection(bson.M{"comments": 1})
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": postID}, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(post.Comments) == 0 {
		return []models.Comment{}, nil
	}

	authorIDs := make([]primitive.ObjectID, 0, len(post.Comments))
	seen := make(map[primitive.ObjectID]bool)
	for _, c := range post.Comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": authorIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var authors []models.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.Author, len(authors))
	for i := range authors {
		byID[authors[i].ID] = &authors[i]
	}
	for i := range post.Comments {
		post.Comments[i].User = byID[post.Comments[i].UserID]
	}
	return post.Comments, nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
