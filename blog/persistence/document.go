package persistence

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arbelos/inkwell/blog/domain"
)

// postDocument is the denormalized storage shape of a Post aggregate: the
// author snapshot is copied in and every owned comment is embedded, so a
// full post renders from a single fetch. Optional fields are omitted when
// absent, never written as sentinels.
type postDocument struct {
	ID          primitive.ObjectID  `bson:"_id"`
	Slug        string              `bson:"slug"`
	Title       string              `bson:"title"`
	Content     string              `bson:"content"`
	Excerpt     string              `bson:"excerpt,omitempty"`
	AuthorID    *primitive.ObjectID `bson:"author_id,omitempty"`
	AuthorName  string              `bson:"author_name,omitempty"`
	AuthorEmail string              `bson:"author_email,omitempty"`
	Status      string              `bson:"status"`
	Tags        []string            `bson:"tags"`
	Category    string              `bson:"category,omitempty"`
	ViewsCount  int                 `bson:"views_count"`
	LikesCount  int                 `bson:"likes_count"`
	Comments    []commentDocument   `bson:"comments"`
	CreatedAt   time.Time           `bson:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at"`
	PublishedAt *time.Time          `bson:"published_at,omitempty"`
}

type commentDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	AuthorName  string             `bson:"author_name"`
	AuthorEmail string             `bson:"author_email"`
	Content     string             `bson:"content"`
	Status      string             `bson:"status"`
	Likes       int                `bson:"likes"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toPostDocument(p *domain.Post) postDocument {
	rec := p.Record()
	comments := make([]commentDocument, 0, len(rec.Comments))
	for _, cr := range rec.Comments {
		comments = append(comments, commentDocument{
			ID:          cr.ID,
			AuthorName:  cr.AuthorName,
			AuthorEmail: cr.AuthorEmail.String(),
			Content:     cr.Content,
			Status:      cr.Status.String(),
			Likes:       cr.Likes,
			CreatedAt:   cr.CreatedAt,
		})
	}
	return postDocument{
		ID:          rec.ID,
		Slug:        rec.Slug.String(),
		Title:       rec.Title,
		Content:     rec.Content,
		Excerpt:     rec.Excerpt,
		AuthorID:    rec.AuthorID,
		AuthorName:  rec.AuthorName,
		AuthorEmail: rec.AuthorEmail,
		Status:      rec.Status.String(),
		Tags:        rec.Tags,
		Category:    rec.Category,
		ViewsCount:  rec.ViewsCount,
		LikesCount:  rec.LikesCount,
		Comments:    comments,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		PublishedAt: rec.PublishedAt,
	}
}

// toDomain rebuilds the aggregate from a stored document. A document that
// fails to re-parse its validated fields is corrupt and surfaces as an
// error rather than a half-built aggregate. Missing optional fields fall
// back to the entity defaults (empty tags, zero counters) via the bson
// zero values.
func (doc postDocument) toDomain(clock domain.Clock) (*domain.Post, error) {
	slug, err := domain.NewSlug(doc.Slug)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID.Hex(), err)
	}
	status, err := domain.ParsePostStatus(doc.Status)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID.Hex(), err)
	}
	comments := make([]domain.CommentRecord, 0, len(doc.Comments))
	for _, cd := range doc.Comments {
		email, err := domain.NewEmail(cd.AuthorEmail)
		if err != nil {
			return nil, fmt.Errorf("document %s, comment %s: %w", doc.ID.Hex(), cd.ID.Hex(), err)
		}
		commentStatus, err := domain.ParseCommentStatus(cd.Status)
		if err != nil {
			return nil, fmt.Errorf("document %s, comment %s: %w", doc.ID.Hex(), cd.ID.Hex(), err)
		}
		comments = append(comments, domain.CommentRecord{
			ID:          cd.ID,
			AuthorName:  cd.AuthorName,
			AuthorEmail: email,
			Content:     cd.Content,
			Status:      commentStatus,
			Likes:       cd.Likes,
			CreatedAt:   cd.CreatedAt,
		})
	}
	return domain.RehydratePost(domain.PostRecord{
		ID:          doc.ID,
		Slug:        slug,
		Title:       doc.Title,
		Content:     doc.Content,
		Excerpt:     doc.Excerpt,
		AuthorID:    doc.AuthorID,
		AuthorName:  doc.AuthorName,
		AuthorEmail: doc.AuthorEmail,
		Status:      status,
		Tags:        doc.Tags,
		Category:    doc.Category,
		ViewsCount:  doc.ViewsCount,
		LikesCount:  doc.LikesCount,
		Comments:    comments,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		PublishedAt: doc.PublishedAt,
	}, clock), nil
}

// authorDocument is the storage shape of an Author record.
type authorDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Email       string             `bson:"email"`
	Username    string             `bson:"username"`
	DisplayName string             `bson:"display_name"`
	Bio         string             `bson:"bio,omitempty"`
	AvatarURL   string             `bson:"avatar_url,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toAuthorDocument(a *domain.Author) authorDocument {
	rec := a.Record()
	return authorDocument{
		ID:          rec.ID,
		Email:       rec.Email.String(),
		Username:    rec.Username,
		DisplayName: rec.DisplayName,
		Bio:         rec.Bio,
		AvatarURL:   rec.AvatarURL,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (doc authorDocument) toDomain(clock domain.Clock) (*domain.Author, error) {
	email, err := domain.NewEmail(doc.Email)
	if err != nil {
		return nil, fmt.Errorf("author document %s: %w", doc.ID.Hex(), err)
	}
	return domain.RehydrateAuthor(domain.AuthorRecord{
		ID:          doc.ID,
		Email:       email,
		Username:    doc.Username,
		DisplayName: doc.DisplayName,
		Bio:         doc.Bio,
		AvatarURL:   doc.AvatarURL,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, clock), nil
}

// categoryDocument is the storage shape of a Category record.
type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toCategoryDocument(c *domain.Category) categoryDocument {
	return categoryDocument{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug.String(),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (doc categoryDocument) toDomain() (*domain.Category, error) {
	slug, err := domain.NewSlug(doc.Slug)
	if err != nil {
		return nil, fmt.Errorf("category document %s: %w", doc.ID.Hex(), err)
	}
	return &domain.Category{
		ID:          doc.ID,
		Name:        doc.Name,
		Slug:        slug,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
