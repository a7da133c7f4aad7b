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

var _ domain.CategoryRepository = (*MongoCategoryRepository)(nil)

const categoryCollection = "categories"

// MongoCategoryRepository implements domain.CategoryRepository.
type MongoCategoryRepository struct {
	coll *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{coll: db.Collection(categoryCollection)}
}

// EnsureIndexes creates the unique slug index.
func (r *MongoCategoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return storageErr("create category indexes", err)
	}
	return nil
}

// Save performs an idempotent insert-or-replace keyed by the category id.
func (r *MongoCategoryRepository) Save(ctx context.Context, c *domain.Category) error {
	doc := toCategoryDocument(c)
	_, err := r.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return storageErr("save category", err)
	}
	return nil
}

func (r *MongoCategoryRepository) GetBySlug(ctx context.Context, slug domain.Slug) (*domain.Category, error) {
	var doc categoryDocument
	err := r.coll.FindOne(ctx, bson.M{"slug": slug.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get category by slug", err)
	}
	category, err := doc.toDomain()
	if err != nil {
		return nil, storageErr("get category by slug", err)
	}
	return category, nil
}

// List returns every category ordered by name.
func (r *MongoCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	defer cursor.Close(ctx)

	categories := make([]*domain.Category, 0)
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, storageErr("list categories", err)
		}
		category, err := doc.toDomain()
		if err != nil {
			return nil, storageErr("list categories", err)
		}
		categories = append(categories, category)
	}
	if err := cursor.Err(); err != nil {
		return nil, storageErr("list categories", err)
	}
	return categories, nil
}

// Delete removes the category document and reports whether one was removed.
func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storageErr("delete category", err)
	}
	return res.DeletedCount > 0, nil
}
