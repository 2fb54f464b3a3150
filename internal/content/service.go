package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	CreateBlog(ctx context.Context, b *Blog) error
	BlogByID(ctx context.Context, id string) (*Blog, error)
	UpdateBlog(ctx context.Context, b *Blog) (*Blog, error)
	DeleteBlog(ctx context.Context, id string) error
	ListBlogs(ctx context.Context, f BlogFilter) ([]Blog, int, error)

	CreateTestimonial(ctx context.Context, t *Testimonial) error
	TestimonialByID(ctx context.Context, id string) (*Testimonial, error)
	UpdateTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) error
	ListTestimonials(ctx context.Context, f TestimonialFilter) ([]Testimonial, int, error)

	CountBlogs(ctx context.Context) (int, error)
	CountTestimonials(ctx context.Context) (int, error)
}

type Service struct {
	repo Repo
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// BlogInput carries the admin form; zero values fall back to the same
// defaults the site has always used.
type BlogInput struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	ImageURL        string   `json:"image_url"`
	ImageKey        string   `json:"image_key"`
	Author          string   `json:"author"`
	Tags            []string `json:"tags"`
	Published       *bool    `json:"published"`
	Featured        bool     `json:"featured"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
}

func (in *BlogInput) apply(b *Blog) error {
	if in.Title == "" || in.Content == "" {
		return fmt.Errorf("%w: title and content are required", ErrValidation)
	}
	b.Title = in.Title
	b.Content = in.Content

	b.Excerpt = in.Excerpt
	if b.Excerpt == "" {
		b.Excerpt = truncate(in.Title, 150)
	}
	b.ImageURL = optional(in.ImageURL)
	b.ImageKey = optional(in.ImageKey)
	b.Author = in.Author
	if b.Author == "" {
		b.Author = defaultAuthor
	}
	b.Tags = in.Tags
	if b.Tags == nil {
		b.Tags = []string{}
	}
	b.Published = in.Published == nil || *in.Published
	b.Featured = in.Featured
	b.MetaTitle = in.MetaTitle
	if b.MetaTitle == "" {
		b.MetaTitle = b.Title
	}
	b.MetaDescription = in.MetaDescription
	if b.MetaDescription == "" {
		b.MetaDescription = b.Excerpt
	}
	return nil
}

func (s *Service) CreateBlog(ctx context.Context, in BlogInput) (*Blog, error) {
	b := &Blog{ID: uuid.NewString(), CreatedAt: s.now(), UpdatedAt: s.now()}
	if err := in.apply(b); err != nil {
		return nil, err
	}
	if err := s.repo.CreateBlog(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("blog created", zap.String("blog_id", b.ID), zap.String("title", b.Title))
	return b, nil
}

func (s *Service) UpdateBlog(ctx context.Context, id string, in BlogInput) (*Blog, error) {
	b, err := s.repo.BlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(b); err != nil {
		return nil, err
	}
	return s.repo.UpdateBlog(ctx, b)
}

func (s *Service) DeleteBlog(ctx context.Context, id string) error {
	return s.repo.DeleteBlog(ctx, id)
}

// PublishedBlog is the public single-post read. Drafts are reported as
// missing so the public surface cannot tell them apart from deleted posts.
func (s *Service) PublishedBlog(ctx context.Context, id string) (*Blog, error) {
	b, err := s.repo.BlogByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Published {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) Blogs(ctx context.Context, f BlogFilter) ([]Blog, *Pagination, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	items, total, err := s.repo.ListBlogs(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return items, paginate(f.Page, f.Limit, total), nil
}

type TestimonialInput struct {
	Name         string `json:"name"`
	YouTubeURL   string `json:"youtube_url"`
	Description  string `json:"description"`
	Rating       int    `json:"rating"`
	Location     string `json:"location"`
	Featured     bool   `json:"is_featured"`
	DisplayOrder int    `json:"display_order"`
	Status       string `json:"status"`
}

func (in *TestimonialInput) apply(t *Testimonial) error {
	if in.Name == "" || in.Description == "" {
		return fmt.Errorf("%w: name and description are required", ErrValidation)
	}
	yt := strings.TrimSpace(in.YouTubeURL)
	if yt != "" && !youtubeRe.MatchString(yt) {
		return fmt.Errorf("%w: please enter a valid YouTube URL", ErrValidation)
	}
	if in.Rating != 0 && (in.Rating < 1 || in.Rating > 5) {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if in.Status != "" && !validTestimonialStatus(in.Status) {
		return fmt.Errorf("%w: invalid status value", ErrValidation)
	}

	t.Name = in.Name
	t.Description = in.Description
	t.YouTubeURL = optional(yt)
	t.Rating = in.Rating
	if t.Rating == 0 {
		t.Rating = 5
	}
	t.Location = optional(in.Location)
	t.Featured = in.Featured
	t.DisplayOrder = in.DisplayOrder
	t.Status = in.Status
	if t.Status == "" {
		t.Status = TestimonialActive
	}
	return nil
}

func (s *Service) CreateTestimonial(ctx context.Context, in TestimonialInput) (*Testimonial, error) {
	t := &Testimonial{ID: uuid.NewString(), CreatedAt: s.now(), UpdatedAt: s.now()}
	if err := in.apply(t); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTestimonial(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) UpdateTestimonial(ctx context.Context, id string, in TestimonialInput) (*Testimonial, error) {
	t, err := s.repo.TestimonialByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(t); err != nil {
		return nil, err
	}
	return s.repo.UpdateTestimonial(ctx, t)
}

func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	return s.repo.DeleteTestimonial(ctx, id)
}

func (s *Service) Testimonials(ctx context.Context, f TestimonialFilter) ([]Testimonial, *Pagination, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)
	items, total, err := s.repo.ListTestimonials(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return items, paginate(f.Page, f.Limit, total), nil
}

func (s *Service) Counts(ctx context.Context) (blogs, testimonials int, err error) {
	if blogs, err = s.repo.CountBlogs(ctx); err != nil {
		return 0, 0, err
	}
	if testimonials, err = s.repo.CountTestimonials(ctx); err != nil {
		return 0, 0, err
	}
	return blogs, testimonials, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func paginate(page, limit, total int) *Pagination {
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: (total + limit - 1) / limit}
}
