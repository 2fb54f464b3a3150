package httpx

import (
	"net/http"

	"github.com/accurateastro/astro-backend/internal/auth"
	"github.com/accurateastro/astro-backend/internal/booking"
	"github.com/accurateastro/astro-backend/internal/content"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminHandler struct {
	Auth     *auth.Service
	Bookings *booking.Service
	Content  *content.Service
	Log      *zap.Logger
}

func (h *AdminHandler) Register(r chi.Router, mw *AuthMiddleware) {
	r.Post("/api/admin/login", h.login)

	r.Group(func(g chi.Router) {
		g.Use(mw.Authenticate, mw.RequireAdmin)
		g.Get("/api/admin/profile", h.profile)
		g.Put("/api/admin/profile", h.updateProfile)
		g.Put("/api/admin/change-password", h.changePassword)
		g.Post("/api/admin/logout", h.logout)
		g.Get("/api/admin/dashboard", h.dashboard)
	})
}

func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	admin, token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user": envelope{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
			"role":     admin.Role,
		},
	})
}

func (h *AdminHandler) profile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	admin, err := h.Auth.Profile(r.Context(), claims.Sub)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "profile": admin})
}

func (h *AdminHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := ClaimsFrom(r.Context())
	admin, err := h.Auth.UpdateProfile(r.Context(), claims.Sub, req.Username, req.Email)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Profile updated successfully",
		"profile": admin,
	})
}

func (h *AdminHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		fail(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	claims := ClaimsFrom(r.Context())
	if err := h.Auth.ChangePassword(r.Context(), claims.Sub, req.CurrentPassword, req.NewPassword); err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Password changed successfully"})
}

// Tokens are stateless; logout is the client discarding its copy.
func (h *AdminHandler) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Logout successful"})
}

func (h *AdminHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.Bookings.Stats(r.Context())
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	blogs, testimonials, err := h.Content.Counts(r.Context())
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"stats": envelope{
			"total": envelope{
				"consultations":  st.Total.Consultations,
				"demoBookings":   st.Total.DemoBookings,
				"kundliRequests": st.Total.KundliRequests,
				"testimonials":   testimonials,
				"blogs":          blogs,
				"revenue":        st.Total.Revenue,
			},
			"pending": st.Pending,
			"today":   st.Today,
		},
	})
}
