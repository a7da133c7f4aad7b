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

var _ domain.AuthorRepository = (*MongoAuthorRepository)(nil)

const authorCollection = "authors"

// MongoAuthorRepository implements domain.AuthorRepository. Email and
// username uniqueness are enforced here through unique indexes, not by the
// entity.
type MongoAuthorRepository struct {
	coll  *mongo.Collection
	clock domain.Clock
}

// NewMongoAuthorRepository creates a repository over db's authors
// collection. A nil clock falls back to domain.UTCNow.
func NewMongoAuthorRepository(db *mongo.Database, clock domain.Clock) *MongoAuthorRepository {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &MongoAuthorRepository{
		coll:  db.Collection(authorCollection),
		clock: clock,
	}
}

// EnsureIndexes creates the unique email and username indexes.
func (r *MongoAuthorRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return storageErr("create author indexes", err)
	}
	return nil
}

// Save performs an idempotent insert-or-replace keyed by the author id.
func (r *MongoAuthorRepository) Save(ctx context.Context, a *domain.Author) error {
	doc := toAuthorDocument(a)
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("save author", err)
	}
	return nil
}

func (r *MongoAuthorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Author, error) {
	return r.getOne(ctx, bson.M{"_id": id}, "get author by id")
}

func (r *MongoAuthorRepository) GetByEmail(ctx context.Context, email domain.Email) (*domain.Author, error) {
	return r.getOne(ctx, bson.M{"email": email.String()}, "get author by email")
}

func (r *MongoAuthorRepository) GetByUsername(ctx context.Context, username string) (*domain.Author, error) {
	return r.getOne(ctx, bson.M{"username": username}, "get author by username")
}

func (r *MongoAuthorRepository) getOne(ctx context.Context, filter bson.M, op string) (*domain.Author, error) {
	var doc authorDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(op, err)
	}
	author, err := doc.toDomain(r.clock)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return author, nil
}

// List returns authors ordered by creation time ascending within the
// pagination window.
func (r *MongoAuthorRepository) List(ctx context.Context, skip, limit int) ([]*domain.Author, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list authors", err)
	}
	defer cursor.Close(ctx)

	authors := make([]*domain.Author, 0)
	for cursor.Next(ctx) {
		var doc authorDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, storageErr("list authors", err)
		}
		author, err := doc.toDomain(r.clock)
		if err != nil {
			return nil, storageErr("list authors", err)
		}
		authors = append(authors, author)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("list authors", err)
	}
	return authors, nil
}

// Delete removes the author document and reports whether one was removed.
func (r *MongoAuthorRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storageErr("delete author", err)
	}
	return res.DeletedCount > 0, nil
}
