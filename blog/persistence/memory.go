package persistence

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
)

var _ domain.PostRepository = (*MemoryPostRepository)(nil)

// MemoryPostRepository is the in-memory fake of domain.PostRepository used
// in tests and local development. It stores the same denormalized documents
// the Mongo implementation writes, so every read and write exercises the
// full mapping round trip.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]postDocument
	clock domain.Clock
}

// NewMemoryPostRepository creates an empty fake. A nil clock falls back to
// domain.UTCNow.
func NewMemoryPostRepository(clock domain.Clock) *MemoryPostRepository {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &MemoryPostRepository{
		docs:  make(map[primitive.ObjectID]postDocument),
		clock: clock,
	}
}

func (r *MemoryPostRepository) Save(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := toPostDocument(p)
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryPostRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return doc.toDomain(r.clock)
}

func (r *MemoryPostRepository) GetBySlug(_ context.Context, slug domain.Slug) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.Slug == slug.String() {
			return doc.toDomain(r.clock)
		}
	}
	return nil, nil
}

func (r *MemoryPostRepository) FindPublished(_ context.Context, skip, limit int) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query(func(doc postDocument) bool {
		return doc.Status == domain.PostStatusPublished.String()
	}, byPublishedAtDesc, skip, limit)
}

func (r *MemoryPostRepository) FindByTag(_ context.Context, tag string, skip, limit int) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query(func(doc postDocument) bool {
		if doc.Status != domain.PostStatusPublished.String() {
			return false
		}
		for _, t := range doc.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}, byPublishedAtDesc, skip, limit)
}

func (r *MemoryPostRepository) FindByAuthor(_ context.Context, authorID primitive.ObjectID, skip, limit int) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.query(func(doc postDocument) bool {
		return doc.AuthorID != nil && *doc.AuthorID == authorID
	}, byCreatedAtDesc, skip, limit)
}

func (r *MemoryPostRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

func (r *MemoryPostRepository) CountPublished(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, doc := range r.docs {
		if doc.Status == domain.PostStatusPublished.String() {
			count++
		}
	}
	return count, nil
}

func byPublishedAtDesc(a, b postDocument) bool {
	if a.PublishedAt == nil || b.PublishedAt == nil {
		return b.PublishedAt == nil && a.PublishedAt != nil
	}
	return a.PublishedAt.After(*b.PublishedAt)
}

func byCreatedAtDesc(a, b postDocument) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

// query filters, sorts, and paginates under the caller's read lock.
func (r *MemoryPostRepository) query(match func(postDocument) bool, less func(a, b postDocument) bool, skip, limit int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	matched := make([]postDocument, 0)
	for _, doc := range r.docs {
		if match(doc) {
			matched = append(matched, doc)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return less(matched[i], matched[j])
	})

	if skip >= len(matched) {
		return []*domain.Post{}, nil
	}
	matched = matched[skip:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	posts := make([]*domain.Post, 0, len(matched))
	for _, doc := range matched {
		post, err := doc.toDomain(r.clock)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

var _ domain.AuthorRepository = (*MemoryAuthorRepository)(nil)

// MemoryAuthorRepository is the in-memory fake of domain.AuthorRepository.
type MemoryAuthorRepository struct {
	mu    sync.RWMutex
	docs  map[primitive.ObjectID]authorDocument
	clock domain.Clock
}

func NewMemoryAuthorRepository(clock domain.Clock) *MemoryAuthorRepository {
	if clock == nil {
		clock = domain.UTCNow
	}
	return &MemoryAuthorRepository{
		docs:  make(map[primitive.ObjectID]authorDocument),
		clock: clock,
	}
}

func (r *MemoryAuthorRepository) Save(_ context.Context, a *domain.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := toAuthorDocument(a)
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryAuthorRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return doc.toDomain(r.clock)
}

func (r *MemoryAuthorRepository) GetByEmail(_ context.Context, email domain.Email) (*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.Email == email.String() {
			return doc.toDomain(r.clock)
		}
	}
	return nil, nil
}

func (r *MemoryAuthorRepository) GetByUsername(_ context.Context, username string) (*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.Username == username {
			return doc.toDomain(r.clock)
		}
	}
	return nil, nil
}

func (r *MemoryAuthorRepository) List(_ context.Context, skip, limit int) ([]*domain.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	docs := make([]authorDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	if skip >= len(docs) {
		return []*domain.Author{}, nil
	}
	docs = docs[skip:]
	if limit < len(docs) {
		docs = docs[:limit]
	}

	authors := make([]*domain.Author, 0, len(docs))
	for _, doc := range docs {
		author, err := doc.toDomain(r.clock)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}

func (r *MemoryAuthorRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}

var _ domain.CategoryRepository = (*MemoryCategoryRepository)(nil)

// MemoryCategoryRepository is the in-memory fake of
// domain.CategoryRepository.
type MemoryCategoryRepository struct {
	mu   sync.RWMutex
	docs map[primitive.ObjectID]categoryDocument
}

func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{docs: make(map[primitive.ObjectID]categoryDocument)}
}

func (r *MemoryCategoryRepository) Save(_ context.Context, c *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := toCategoryDocument(c)
	r.docs[doc.ID] = doc
	return nil
}

func (r *MemoryCategoryRepository) GetBySlug(_ context.Context, slug domain.Slug) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.Slug == slug.String() {
			return doc.toDomain()
		}
	}
	return nil, nil
}

func (r *MemoryCategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]categoryDocument, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})

	categories := make([]*domain.Category, 0, len(docs))
	for _, doc := range docs {
		category, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *MemoryCategoryRepository) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	return true, nil
}
