package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arbelos/inkwell/blog/domain"
)

var _ domain.PostRepository = (*MongoPostRepository)(nil)

const postCollection = "posts"

const defaultLimit = 10

// MongoPostRepository implements domain.PostRepository on a single
// denormalized posts collection. The whole aggregate, embedded comments
// included, is written in one call; no partial aggregate is ever loaded or
// saved.
type MongoPostRepository struct {
	coll  *mongo.Collection
	clock domain.Clock
}

// NewMongoPostRepository creates a repository over db's posts collection.
// A nil clock falls back to domain.UTCNow.
func NewMongoPostRepository(db *mongo.Database, clock domain.Clock) *MongoPostRepository {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &MongoPostRepository{
		coll:  db.Collection(postCollection),
		clock: clock,
	}
}

// EnsureIndexes creates the unique slug index and the query-supporting
// indexes. Safe to call on every startup.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "tags", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return storageErr("create post indexes", err)
	}
	return nil
}

// Save performs an idempotent insert-or-replace keyed by the aggregate id.
// Ids and timestamps are assigned by the aggregate before save, so nothing
// is merged back into it.
func (r *MongoPostRepository) Save(ctx context.Context, p *domain.Post) error {
	doc := toPostDocument(p)
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("save post", err)
	}
	return nil
}

// GetByID loads the full aggregate by primary key. Returns (nil, nil) when
// no document matches.
func (r *MongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	return r.getOne(ctx, bson.M{"_id": id}, "get post by id")
}

// GetBySlug loads the full aggregate by its unique slug.
func (r *MongoPostRepository) GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Post, error) {
	return r.getOne(ctx, bson.M{"slug": slug.String()}, "get post by slug")
}

func (r *MongoPostRepository) getOne(ctx context.Context, filter bson.M, op string) (*domain.Post, error) {
	var doc postDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(op, err)
	}
	post, err := doc.toDomain(r.clock)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return post, nil
}

// FindPublished returns published posts, most recently published first.
func (r *MongoPostRepository) FindPublished(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	filter := bson.M{"status": domain.PostStatusPublished.String()}
	return r.find(ctx, filter, bson.D{{Key: "published_at", Value: -1}}, skip, limit, "find published posts")
}

// FindByTag returns published posts carrying the tag, most recently
// published first.
func (r *MongoPostRepository) FindByTag(ctx context.Context, tag string, skip, limit int) ([]*domain.Post, error) {
	filter := bson.M{
		"status": domain.PostStatusPublished.String(),
		"tags":   tag,
	}
	return r.find(ctx, filter, bson.D{{Key: "published_at", Value: -1}}, skip, limit, "find posts by tag")
}

// FindByAuthor returns the author's posts in any status, newest first.
func (r *MongoPostRepository) FindByAuthor(ctx context.Context, authorID primitive.ObjectID, skip, limit int) ([]*domain.Post, error) {
	filter := bson.M{"author_id": authorID}
	return r.find(ctx, filter, bson.D{{Key: "created_at", Value: -1}}, skip, limit, "find posts by author")
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int, op string) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer cursor.Close(ctx)

	posts := make([]*domain.Post, 0)
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, storageErr(op, err)
		}
		post, err := doc.toDomain(r.clock)
		if err != nil {
			return nil, storageErr(op, err)
		}
		posts = append(posts, post)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return posts, nil
}

// Delete removes the post document and reports whether one was removed.
func (r *MongoPostRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storageErr("delete post", err)
	}
	return res.DeletedCount > 0, nil
}

// CountPublished counts published posts for pagination totals.
func (r *MongoPostRepository) CountPublished(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"status": domain.PostStatusPublished.String()})
	if err != nil {
		return 0, storageErr("count published posts", err)
	}
	return count, nil
}
