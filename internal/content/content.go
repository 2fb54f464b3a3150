package content

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrNotFound   = errors.New("content not found")
	ErrValidation = errors.New("validation error")
)

const defaultAuthor = "Accurate Astro"

type Blog struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	ImageURL        *string   `json:"image_url"`
	ImageKey        *string   `json:"image_key,omitempty"`
	Author          string    `json:"author"`
	Tags            []string  `json:"tags"`
	Published       bool      `json:"published"`
	Featured        bool      `json:"featured"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

const (
	TestimonialActive   = "active"
	TestimonialInactive = "inactive"
	TestimonialPending  = "pending"
)

type Testimonial struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	YouTubeURL   *string   `json:"youtube_url"`
	Description  string    `json:"description"`
	Rating       int       `json:"rating"`
	Location     *string   `json:"location"`
	Featured     bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BlogFilter struct {
	Published *bool
	Featured  *bool
	Search    string
	Tag       string
	Page      int
	Limit     int
}

type TestimonialFilter struct {
	Status   string
	Featured *bool
	Search   string
	Page     int
	Limit    int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

var youtubeRe = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.?be)/.+$`)

func validTestimonialStatus(s string) bool {
	return s == TestimonialActive || s == TestimonialInactive || s == TestimonialPending
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
