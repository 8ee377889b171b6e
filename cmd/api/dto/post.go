package dto

import (
	"time"

	"devpress/models"
)

// CategoryDTO is the public category representation.
type CategoryDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// TagDTO is the public tag representation.
type TagDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// CategoryCountDTO is a category index entry with its published post count.
type CategoryCountDTO struct {
	CategoryDTO
	PostCount int64 `json:"post_count"`
}

// TagCountDTO is a tag index entry with its published post count.
type TagCountDTO struct {
	TagDTO
	PostCount int64 `json:"post_count"`
}

// PostDTO is the public listing representation of a post.
type PostDTO struct {
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Excerpt          string      `json:"excerpt"`
	Author           string      `json:"author"`
	ReadingTime      int         `json:"reading_time"`
	Featured         bool        `json:"featured"`
	PublishedAt      *time.Time  `json:"published_at"`
	Category         CategoryDTO `json:"category"`
	Tags             []TagDTO    `json:"tags"`
	Keywords         []string    `json:"keywords"`
	FeaturedImage    string      `json:"featured_image"`
	FeaturedImageAlt string      `json:"featured_image_alt"`
}

// RelatedPostDTO is the compact related-post card.
type RelatedPostDTO struct {
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	PublishedAt   *time.Time  `json:"published_at"`
	Category      CategoryDTO `json:"category"`
	FeaturedImage string      `json:"featured_image"`
}

// PostDetailDTO is the public detail representation: the listing fields plus
// rendered HTML and related-post suggestions.
type PostDetailDTO struct {
	PostDTO
	HTML string `json:"html"`
	// RelatedBy 는 관련 글이 어느 단계에서 선택됐는지 나타낸다.
	// "tags" | "category" | "recent"
	RelatedBy string           `json:"related_by"`
	Related   []RelatedPostDTO `json:"related"`
}

// AdminPostDTO is the full admin representation of a post.
type AdminPostDTO struct {
	ID               uint        `json:"id"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Content          string      `json:"content"`
	Excerpt          string      `json:"excerpt"`
	Author           string      `json:"author"`
	ReadingTime      int         `json:"reading_time"`
	Published        bool        `json:"published"`
	Featured         bool        `json:"featured"`
	PublishedAt      *time.Time  `json:"published_at"`
	ScheduledFor     *time.Time  `json:"scheduled_for"`
	Category         CategoryDTO `json:"category"`
	Tags             []TagDTO    `json:"tags"`
	Keywords         []string    `json:"keywords"`
	FeaturedImage    string      `json:"featured_image"`
	FeaturedImageAlt string      `json:"featured_image_alt"`
}

func MapCategory(c models.Category) CategoryDTO {
	return CategoryDTO{Slug: c.Slug, Name: c.Name}
}

func MapTags(tags []models.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{Slug: t.Slug, Name: t.Name})
	}
	return out
}

func MapPost(p models.Post) PostDTO {
	return PostDTO{
		Slug:             p.Slug,
		Title:            p.Title,
		Description:      p.Description,
		Excerpt:          p.Excerpt,
		Author:           p.Author,
		ReadingTime:      p.ReadingTime,
		Featured:         p.Featured,
		PublishedAt:      p.PublishedAt,
		Category:         MapCategory(p.Category),
		Tags:             MapTags(p.Tags),
		Keywords:         p.Keywords,
		FeaturedImage:    p.FeaturedImage,
		FeaturedImageAlt: p.FeaturedImageAlt,
	}
}

func MapRelatedPost(p models.Post) RelatedPostDTO {
	return RelatedPostDTO{
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		PublishedAt:   p.PublishedAt,
		Category:      MapCategory(p.Category),
		FeaturedImage: p.FeaturedImage,
	}
}

func MapAdminPost(p models.Post) AdminPostDTO {
	return AdminPostDTO{
		ID:               p.ID,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		Slug:             p.Slug,
		Title:            p.Title,
		Description:      p.Description,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		Author:           p.Author,
		ReadingTime:      p.ReadingTime,
		Published:        p.Published,
		Featured:         p.Featured,
		PublishedAt:      p.PublishedAt,
		ScheduledFor:     p.ScheduledFor,
		Category:         MapCategory(p.Category),
		Tags:             MapTags(p.Tags),
		Keywords:         p.Keywords,
		FeaturedImage:    p.FeaturedImage,
		FeaturedImageAlt: p.FeaturedImageAlt,
	}
}
