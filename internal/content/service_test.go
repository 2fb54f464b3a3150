package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentRepo struct {
	blogs        map[string]*Blog
	testimonials map[string]*Testimonial
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		blogs:        map[string]*Blog{},
		testimonials: map[string]*Testimonial{},
	}
}

func (r *fakeContentRepo) CreateBlog(_ context.Context, b *Blog) error {
	cp := *b
	r.blogs[b.ID] = &cp
	return nil
}

func (r *fakeContentRepo) BlogByID(_ context.Context, id string) (*Blog, error) {
	b, ok := r.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeContentRepo) UpdateBlog(_ context.Context, b *Blog) (*Blog, error) {
	if _, ok := r.blogs[b.ID]; !ok {
		return nil, ErrNotFound
	}
	cp := *b
	r.blogs[b.ID] = &cp
	return b, nil
}

func (r *fakeContentRepo) DeleteBlog(_ context.Context, id string) error {
	if _, ok := r.blogs[id]; !ok {
		return ErrNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *fakeContentRepo) ListBlogs(_ context.Context, _ BlogFilter) ([]Blog, int, error) {
	var out []Blog
	for _, b := range r.blogs {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (r *fakeContentRepo) CreateTestimonial(_ context.Context, t *Testimonial) error {
	cp := *t
	r.testimonials[t.ID] = &cp
	return nil
}

func (r *fakeContentRepo) TestimonialByID(_ context.Context, id string) (*Testimonial, error) {
	t, ok := r.testimonials[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeContentRepo) UpdateTestimonial(_ context.Context, t *Testimonial) (*Testimonial, error) {
	if _, ok := r.testimonials[t.ID]; !ok {
		return nil, ErrNotFound
	}
	cp := *t
	r.testimonials[t.ID] = &cp
	return t, nil
}

func (r *fakeContentRepo) DeleteTestimonial(_ context.Context, id string) error {
	if _, ok := r.testimonials[id]; !ok {
		return ErrNotFound
	}
	delete(r.testimonials, id)
	return nil
}

func (r *fakeContentRepo) ListTestimonials(_ context.Context, _ TestimonialFilter) ([]Testimonial, int, error) {
	var out []Testimonial
	for _, t := range r.testimonials {
		out = append(out, *t)
	}
	return out, len(out), nil
}

func (r *fakeContentRepo) CountBlogs(context.Context) (int, error) {
	return len(r.blogs), nil
}

func (r *fakeContentRepo) CountTestimonials(context.Context) (int, error) {
	return len(r.testimonials), nil
}

func TestCreateBlogDefaults(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)

	b, err := svc.CreateBlog(context.Background(), BlogInput{
		Title:   "Saturn Return Explained",
		Content: "Long form content here.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Saturn Return Explained", b.Excerpt)
	assert.Equal(t, "Accurate Astro", b.Author)
	assert.True(t, b.Published)
	assert.Equal(t, b.Title, b.MetaTitle)
	assert.Equal(t, b.Excerpt, b.MetaDescription)
	assert.NotNil(t, b.Tags)
	assert.Empty(t, b.Tags)
}

func TestCreateBlogLongTitleExcerpt(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)

	long := ""
	for i := 0; i < 40; i++ {
		long += "title"
	}
	b, err := svc.CreateBlog(context.Background(), BlogInput{Title: long, Content: "c"})
	require.NoError(t, err)
	assert.Len(t, []rune(b.Excerpt), 153) // 150 runes plus "..."
}

func TestCreateBlogValidation(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)
	_, err := svc.CreateBlog(context.Background(), BlogInput{Title: "no content"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateBlogKeepsExplicitUnpublished(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewService(repo, nil)

	b, err := svc.CreateBlog(context.Background(), BlogInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	pub := false
	updated, err := svc.UpdateBlog(context.Background(), b.ID, BlogInput{
		Title: "t2", Content: "c2", Published: &pub,
	})
	require.NoError(t, err)
	assert.False(t, updated.Published)
	assert.Equal(t, "t2", updated.Title)
}

func TestPublishedBlogHidesDrafts(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)
	ctx := context.Background()

	pub := false
	draft, err := svc.CreateBlog(ctx, BlogInput{Title: "d", Content: "c", Published: &pub})
	require.NoError(t, err)

	_, err = svc.PublishedBlog(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	live, err := svc.CreateBlog(ctx, BlogInput{Title: "l", Content: "c"})
	require.NoError(t, err)
	got, err := svc.PublishedBlog(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)
}

func TestCreateTestimonialDefaults(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)

	tm, err := svc.CreateTestimonial(context.Background(), TestimonialInput{
		Name:        "Priya",
		Description: "Very accurate reading.",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, tm.Rating)
	assert.Equal(t, TestimonialActive, tm.Status)
	assert.Nil(t, tm.YouTubeURL)
}

func TestCreateTestimonialValidation(t *testing.T) {
	svc := NewService(newFakeContentRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreateTestimonial(ctx, TestimonialInput{Name: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTestimonial(ctx, TestimonialInput{
		Name: "x", Description: "d", YouTubeURL: "https://vimeo.com/123",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTestimonial(ctx, TestimonialInput{
		Name: "x", Description: "d", Rating: 9,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateTestimonial(ctx, TestimonialInput{
		Name: "x", Description: "d", Status: "archived",
	})
	assert.ErrorIs(t, err, ErrValidation)

	tm, err := svc.CreateTestimonial(ctx, TestimonialInput{
		Name: "x", Description: "d", YouTubeURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)
	require.NotNil(t, tm.YouTubeURL)
}

func TestCounts(t *testing.T) {
	repo := newFakeContentRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateBlog(ctx, BlogInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	_, err = svc.CreateTestimonial(ctx, TestimonialInput{Name: "n", Description: "d"})
	require.NoError(t, err)
	_, err = svc.CreateTestimonial(ctx, TestimonialInput{Name: "n2", Description: "d2"})
	require.NoError(t, err)

	blogs, testimonials, err := svc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, blogs)
	assert.Equal(t, 2, testimonials)
}
