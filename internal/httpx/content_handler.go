package httpx

import (
	"net/http"
	"strconv"

	"github.com/accurateastro/astro-backend/internal/content"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContentHandler struct {
	Svc *content.Service
	Log *zap.Logger
}

func (h *ContentHandler) Register(r chi.Router, mw *AuthMiddleware) {
	r.Get("/api/blogs", h.listBlogs(false))
	r.Get("/api/blogs/{id}", h.getBlog)
	r.Get("/api/testimonials", h.listTestimonials(false))

	r.Group(func(g chi.Router) {
		g.Use(mw.Authenticate, mw.RequireAdmin)
		g.Get("/api/admin/blogs", h.listBlogs(true))
		g.Post("/api/blogs", h.createBlog)
		g.Put("/api/blogs/{id}", h.updateBlog)
		g.Delete("/api/blogs/{id}", h.deleteBlog)

		g.Get("/api/admin/testimonials", h.listTestimonials(true))
		g.Post("/api/testimonials", h.createTestimonial)
		g.Put("/api/testimonials/{id}", h.updateTestimonial)
		g.Delete("/api/testimonials/{id}", h.deleteTestimonial)
	})
}

// listBlogs serves both surfaces; the public one only ever sees published
// posts unless the query says otherwise, the admin one sees everything.
func (h *ContentHandler) listBlogs(admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := content.BlogFilter{
			Search: q.Get("search"),
			Tag:    q.Get("tag"),
			Page:   atoiDefault(q.Get("page"), 1),
			Limit:  atoiDefault(q.Get("limit"), 10),
		}
		f.Published = boolParam(q.Get("published"))
		if f.Published == nil && !admin {
			t := true
			f.Published = &t
		}
		f.Featured = boolParam(q.Get("featured"))

		items, pg, err := h.Svc.Blogs(r.Context(), f)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		if items == nil {
			items = []content.Blog{}
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":    true,
			"blogs":      items,
			"pagination": pg,
		})
	}
}

func (h *ContentHandler) getBlog(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.PublishedBlog(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "blog": b})
}

func (h *ContentHandler) createBlog(w http.ResponseWriter, r *http.Request) {
	var in content.BlogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.Svc.CreateBlog(r.Context(), in)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Blog created successfully",
		"blog":    b,
	})
}

func (h *ContentHandler) updateBlog(w http.ResponseWriter, r *http.Request) {
	var in content.BlogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	b, err := h.Svc.UpdateBlog(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Blog updated successfully",
		"blog":    b,
	})
}

func (h *ContentHandler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteBlog(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Blog deleted successfully"})
}

func (h *ContentHandler) listTestimonials(admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := content.TestimonialFilter{
			Status: q.Get("status"),
			Search: q.Get("search"),
			Page:   atoiDefault(q.Get("page"), 1),
			Limit:  atoiDefault(q.Get("limit"), 10),
		}
		if f.Status == "" && !admin {
			f.Status = content.TestimonialActive
		}
		f.Featured = boolParam(q.Get("featured"))

		items, pg, err := h.Svc.Testimonials(r.Context(), f)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		if items == nil {
			items = []content.Testimonial{}
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":      true,
			"testimonials": items,
			"pagination":   pg,
		})
	}
}

func (h *ContentHandler) createTestimonial(w http.ResponseWriter, r *http.Request) {
	var in content.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.Svc.CreateTestimonial(r.Context(), in)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"success":     true,
		"message":     "Testimonial created successfully",
		"testimonial": t,
	})
}

func (h *ContentHandler) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in content.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	t, err := h.Svc.UpdateTestimonial(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":     true,
		"message":     "Testimonial updated successfully",
		"testimonial": t,
	})
}

func (h *ContentHandler) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Testimonial deleted successfully"})
}

func boolParam(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}
