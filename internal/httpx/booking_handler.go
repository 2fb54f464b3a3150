package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/accurateastro/astro-backend/internal/booking"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	Svc *booking.Service
	Log *zap.Logger
}

// kindRoutes pins each booking kind to its public path and the field names
// the site frontend has always used.
type kindRoutes struct {
	kind        booking.Kind
	base        string
	idField     string
	recordField string
	listField   string
	hasPayment  bool
}

var allKinds = []kindRoutes{
	{booking.KindConsultation, "/api/consultations", "consultationId", "consultation", "consultations", true},
	{booking.KindKundli, "/api/kundli", "kundliId", "kundli", "kundliRequests", true},
	{booking.KindDemo, "/api/demo-bookings", "bookingId", "booking", "demoBookings", false},
}

func (h *BookingHandler) Register(r chi.Router, mw *AuthMiddleware) {
	for _, kr := range allKinds {
		if kr.hasPayment {
			r.Post(kr.base+"/create", h.create(kr))
			r.Post(kr.base+"/verify", h.verify(kr))
		} else {
			r.Post(kr.base, h.create(kr))
		}
	}

	r.Group(func(g chi.Router) {
		g.Use(mw.Authenticate, mw.RequireAdmin)
		g.Get("/api/demo-bookings/upcoming", h.upcoming)
		for _, kr := range allKinds {
			g.Get(kr.base, h.list(kr))
			g.Get(kr.base+"/{id}", h.get(kr))
			g.Put(kr.base+"/{id}/status", h.updateStatus(kr))
			g.Delete(kr.base+"/{id}", h.delete(kr))
		}
	})
}

func (h *BookingHandler) create(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in booking.CreateInput
		if !decodeJSON(w, r, &in) {
			return
		}
		res, err := h.Svc.Create(r.Context(), kr.kind, in)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		if !kr.hasPayment {
			writeJSON(w, http.StatusOK, envelope{
				"success":      true,
				"message":      "Demo booked successfully! We will contact you soon.",
				kr.recordField: res.Booking,
			})
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":  true,
			"message":  "Request created successfully",
			kr.idField: res.Booking.ID,
			"orderId":  res.OrderID,
			"amount":   res.AmountMinor,
			"currency": res.Currency,
		})
	}
}

type verifyReq struct {
	OrderID        string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id"`
	Signature      string `json:"razorpay_signature"`
	ConsultationID string `json:"consultationId"`
	KundliID       string `json:"kundliId"`
}

func (req *verifyReq) recordID(k booking.Kind) string {
	if k == booking.KindKundli {
		return req.KundliID
	}
	return req.ConsultationID
}

func (h *BookingHandler) verify(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyReq
		if !decodeJSON(w, r, &req) {
			return
		}
		id := req.recordID(kr.kind)
		if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" || id == "" {
			fail(w, http.StatusBadRequest, "Missing payment verification details")
			return
		}
		b, err := h.Svc.Verify(r.Context(), kr.kind, id, req.OrderID, req.PaymentID, req.Signature)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":      true,
			"message":      "Payment verified successfully",
			kr.recordField: b,
		})
	}
}

func (h *BookingHandler) list(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := booking.ListFilter{
			Status: q.Get("status"),
			Search: q.Get("search"),
			Page:   atoiDefault(q.Get("page"), 1),
			Limit:  atoiDefault(q.Get("limit"), 10),
		}
		if d, err := time.Parse("2006-01-02", q.Get("dateFrom")); err == nil {
			f.DateFrom = &d
		}
		if d, err := time.Parse("2006-01-02", q.Get("dateTo")); err == nil {
			f.DateTo = &d
		}
		items, pg, err := h.Svc.List(r.Context(), kr.kind, f)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		if items == nil {
			items = []booking.Booking{}
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":    true,
			kr.listField: items,
			"pagination": pg,
		})
	}
}

func (h *BookingHandler) get(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.Svc.Get(r.Context(), kr.kind, chi.URLParam(r, "id"))
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{"success": true, kr.recordField: b})
	}
}

func (h *BookingHandler) updateStatus(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string  `json:"status"`
			Notes  *string `json:"notes"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		b, err := h.Svc.UpdateStatus(r.Context(), kr.kind, chi.URLParam(r, "id"),
			booking.Status(req.Status), req.Notes)
		if err != nil {
			writeErr(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			"success":      true,
			"message":      "Status updated successfully",
			kr.recordField: b,
		})
	}
}

func (h *BookingHandler) delete(kr kindRoutes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.Svc.Delete(r.Context(), kr.kind, chi.URLParam(r, "id")); err != nil {
			writeErr(w, h.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Deleted successfully"})
	}
}

func (h *BookingHandler) upcoming(w http.ResponseWriter, r *http.Request) {
	demos, err := h.Svc.UpcomingDemos(r.Context(), 10)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	if demos == nil {
		demos = []booking.Booking{}
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "upcomingDemos": demos})
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}
