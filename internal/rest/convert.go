package rest

import (
	"github.com/arbelos/inkwell/api"
	"github.com/arbelos/inkwell/blog/domain"
)

func toAPIPost(p *domain.Post, htmlContent string) api.Post {
	out := api.Post{
		ID:          p.ID().Hex(),
		Slug:        p.Slug().String(),
		Title:       p.Title(),
		Content:     p.Content(),
		HTMLContent: htmlContent,
		Excerpt:     p.Excerpt(),
		AuthorName:  p.AuthorName(),
		AuthorEmail: p.AuthorEmail(),
		Status:      p.Status().String(),
		Tags:        p.Tags(),
		Category:    p.Category(),
		ViewsCount:  p.ViewsCount(),
		LikesCount:  p.LikesCount(),
		Comments:    toAPIComments(p.Comments()),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
		PublishedAt: p.PublishedAt(),
	}
	if id := p.AuthorID(); id != nil {
		out.AuthorID = id.Hex()
	}
	return out
}

// toPublicAPIPost renders the public read shape: only approved comments are
// included.
func toPublicAPIPost(p *domain.Post, htmlContent string) api.Post {
	out := toAPIPost(p, htmlContent)
	out.Comments = toAPIComments(p.ApprovedComments())
	return out
}

func toAPIPostSummary(p *domain.Post) api.PostSummary {
	return api.PostSummary{
		ID:          p.ID().Hex(),
		Slug:        p.Slug().String(),
		Title:       p.Title(),
		Excerpt:     p.Excerpt(),
		AuthorName:  p.AuthorName(),
		Tags:        p.Tags(),
		Category:    p.Category(),
		ViewsCount:  p.ViewsCount(),
		LikesCount:  p.LikesCount(),
		PublishedAt: p.PublishedAt(),
	}
}

func toAPIPostSummaries(posts []*domain.Post) []api.PostSummary {
	out := make([]api.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, toAPIPostSummary(p))
	}
	return out
}

func toAPIComment(c domain.Comment) api.Comment {
	return api.Comment{
		ID:          c.ID().Hex(),
		AuthorName:  c.AuthorName(),
		AuthorEmail: c.AuthorEmail().String(),
		Content:     c.Content(),
		Status:      c.Status().String(),
		Likes:       c.Likes(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toAPIComments(comments []domain.Comment) []api.Comment {
	out := make([]api.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, toAPIComment(c))
	}
	return out
}

func toAPIAuthor(a *domain.Author) api.Author {
	return api.Author{
		ID:          a.ID().Hex(),
		Email:       a.Email().String(),
		Username:    a.Username(),
		DisplayName: a.DisplayName(),
		Bio:         a.Bio(),
		AvatarURL:   a.AvatarURL(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toAPICategory(c *domain.Category) api.Category {
	return api.Category{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Slug:        c.Slug.String(),
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
