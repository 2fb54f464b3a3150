package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ DB *pgxpool.Pool }

const blogCols = `id, title, excerpt, content, image_url, image_key, author,
	tags, published, featured, meta_title, meta_description, created_at, updated_at`

func scanBlog(row pgx.Row) (*Blog, error) {
	var b Blog
	err := row.Scan(&b.ID, &b.Title, &b.Excerpt, &b.Content, &b.ImageURL, &b.ImageKey,
		&b.Author, &b.Tags, &b.Published, &b.Featured, &b.MetaTitle, &b.MetaDescription,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}

func (r *PGRepo) CreateBlog(ctx context.Context, b *Blog) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO blogs (id, title, excerpt, content, image_url, image_key, author,
			tags, published, featured, meta_title, meta_description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)`,
		b.ID, b.Title, b.Excerpt, b.Content, b.ImageURL, b.ImageKey, b.Author,
		b.Tags, b.Published, b.Featured, b.MetaTitle, b.MetaDescription, b.CreatedAt)
	return err
}

func (r *PGRepo) BlogByID(ctx context.Context, id string) (*Blog, error) {
	return scanBlog(r.DB.QueryRow(ctx, `SELECT `+blogCols+` FROM blogs WHERE id=$1`, id))
}

func (r *PGRepo) UpdateBlog(ctx context.Context, b *Blog) (*Blog, error) {
	return scanBlog(r.DB.QueryRow(ctx, `
		UPDATE blogs SET title=$1, excerpt=$2, content=$3, image_url=$4, image_key=$5,
			author=$6, tags=$7, published=$8, featured=$9, meta_title=$10,
			meta_description=$11, updated_at=now()
		WHERE id=$12
		RETURNING `+blogCols,
		b.Title, b.Excerpt, b.Content, b.ImageURL, b.ImageKey, b.Author, b.Tags,
		b.Published, b.Featured, b.MetaTitle, b.MetaDescription, b.ID))
}

func (r *PGRepo) DeleteBlog(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM blogs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListBlogs(ctx context.Context, f BlogFilter) ([]Blog, int, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Published != nil {
		where = append(where, "published="+arg(*f.Published))
	}
	if f.Featured != nil {
		where = append(where, "featured="+arg(*f.Featured))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR excerpt ILIKE %s OR content ILIKE %s)", p, p, p))
	}
	if f.Tag != "" {
		where = append(where, arg(f.Tag)+" = ANY(tags)")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM blogs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM blogs WHERE %s ORDER BY created_at DESC LIMIT %s OFFSET %s`,
		blogCols, cond, arg(f.Limit), arg((f.Page-1)*f.Limit))
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *b)
	}
	return out, total, rows.Err()
}

const testimonialCols = `id, name, youtube_url, description, rating, location,
	is_featured, display_order, status, created_at, updated_at`

func scanTestimonial(row pgx.Row) (*Testimonial, error) {
	var t Testimonial
	err := row.Scan(&t.ID, &t.Name, &t.YouTubeURL, &t.Description, &t.Rating,
		&t.Location, &t.Featured, &t.DisplayOrder, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGRepo) CreateTestimonial(ctx context.Context, t *Testimonial) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO testimonials (id, name, youtube_url, description, rating, location,
			is_featured, display_order, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)`,
		t.ID, t.Name, t.YouTubeURL, t.Description, t.Rating, t.Location,
		t.Featured, t.DisplayOrder, t.Status, t.CreatedAt)
	return err
}

func (r *PGRepo) TestimonialByID(ctx context.Context, id string) (*Testimonial, error) {
	return scanTestimonial(r.DB.QueryRow(ctx,
		`SELECT `+testimonialCols+` FROM testimonials WHERE id=$1`, id))
}

func (r *PGRepo) UpdateTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error) {
	return scanTestimonial(r.DB.QueryRow(ctx, `
		UPDATE testimonials SET name=$1, youtube_url=$2, description=$3, rating=$4,
			location=$5, is_featured=$6, display_order=$7, status=$8, updated_at=now()
		WHERE id=$9
		RETURNING `+testimonialCols,
		t.Name, t.YouTubeURL, t.Description, t.Rating, t.Location,
		t.Featured, t.DisplayOrder, t.Status, t.ID))
}

func (r *PGRepo) DeleteTestimonial(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM testimonials WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ListTestimonials(ctx context.Context, f TestimonialFilter) ([]Testimonial, int, error) {
	f.Page, f.Limit = normalizePage(f.Page, f.Limit)

	where := []string{"TRUE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status="+arg(f.Status))
	}
	if f.Featured != nil {
		where = append(where, "is_featured="+arg(*f.Featured))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s OR location ILIKE %s)", p, p, p))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM testimonials WHERE %s
		ORDER BY display_order ASC, created_at DESC LIMIT %s OFFSET %s`,
		testimonialCols, cond, arg(f.Limit), arg((f.Page-1)*f.Limit))
	rows, err := r.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

func (r *PGRepo) CountBlogs(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&n)
	return n, err
}

func (r *PGRepo) CountTestimonials(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM testimonials`).Scan(&n)
	return n, err
}
