package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lusakatech/rentiva-backend/internal/modules/auth"
	"github.com/lusakatech/rentiva-backend/internal/modules/inventory"
	"github.com/lusakatech/rentiva-backend/internal/modules/user"
)

// Handler exposes booking HTTP endpoints. All routes require an
// authenticated principal; the lifecycle endpoints authorise against the
// principal's role.
type Handler struct {
	service Service
	auth    auth.Service
}

func NewHandler(service Service, authSvc auth.Service) *Handler {
	return &Handler{service: service, auth: authSvc}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/bookings", func(r chi.Router) {
		r.Use(auth.RequireAuth(h.auth))
		r.Post("/", h.createBooking)
		r.Get("/{id}", h.getBooking)
		r.Get("/number/{number}", h.getBookingByNumber)
		r.Patch("/{id}/status", h.updateStatus)
		r.Delete("/{id}", h.cancelBooking)
		r.Get("/mine", h.listMyBookings)
		r.Get("/product/{product_id}", h.listProductBookings) // ?status=PENDING
	})
}

func (h *Handler) createBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	b, err := h.service.CreateBooking(r.Context(), principal.ID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) getBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	b, err := h.service.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err == nil {
		err = authorizePrincipal(principal, b)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) getBookingByNumber(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	b, err := h.service.GetBookingByNumber(r.Context(), chi.URLParam(r, "number"))
	if err == nil {
		err = authorizePrincipal(principal, b)
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.checkOwnership(r, principal, id); err != nil {
		respondError(w, err)
		return
	}

	to := Status(strings.ToUpper(req.Status))
	b, err := h.service.Transition(r.Context(), id, to, principal.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, b)
}

func (h *Handler) cancelBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.checkOwnership(r, principal, id); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.service.Transition(r.Context(), id, StatusCancelled, principal.Role); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "booking cancelled"})
}

func (h *Handler) listMyBookings(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	bookings, err := h.service.ListCustomerBookings(r.Context(), principal.ID.String())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, bookings)
}

func (h *Handler) listProductBookings(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}
	// Product-wide listings expose other customers' bookings.
	if principal.Role == user.RoleCustomer {
		respond(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}

	bookings, err := h.service.ListProductBookings(r.Context(),
		chi.URLParam(r, "product_id"), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, bookings)
}

// authorizePrincipal hides other customers' bookings: a CUSTOMER principal
// may only see or act on bookings it owns. Providers and admins pass.
func authorizePrincipal(principal *auth.Principal, b *Booking) error {
	if principal.Role == user.RoleCustomer && b.CustomerID != principal.ID {
		return ErrNotFound
	}
	return nil
}

func (h *Handler) checkOwnership(r *http.Request, principal *auth.Principal, id string) error {
	b, err := h.service.GetBooking(r.Context(), id)
	if err != nil {
		return err
	}
	return authorizePrincipal(principal, b)
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	code := http.StatusInternalServerError
	switch {
	case errors.As(err, &vErr):
		code = http.StatusBadRequest
	case errors.Is(err, inventory.ErrInvalidDateRange), errors.Is(err, inventory.ErrInvalidQuantity):
		code = http.StatusBadRequest
	case errors.Is(err, inventory.ErrInsufficientStock):
		code = http.StatusConflict
	case errors.Is(err, ErrInvalidTransition):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, ErrNotFound), errors.Is(err, inventory.ErrNotFound):
		code = http.StatusNotFound
	case strings.Contains(err.Error(), "not found"):
		code = http.StatusNotFound
	}
	respond(w, code, map[string]string{"error": err.Error()})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
