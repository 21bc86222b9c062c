package booking

import (
	"github.com/go-chi/chi/v5"

	"github.com/DigitariaWebs/puneet-sub015/internal/rbac"
)

// Routes mounts the booking endpoints behind the rbac middleware.
func (h *Handler) Routes(mw rbac.Middleware) chi.Router {
	r := chi.NewRouter()

	r.With(mw.RequireAny(rbac.PermRequestBooking, rbac.PermManageBookings)).
		Post("/booking-requests", h.Create)

	r.Route("/booking-requests/{id}", func(r chi.Router) {
		review := mw.RequireAny(rbac.PermReviewBookings)
		r.With(review).Post("/accept", h.transitionTo(StatusAccepted))
		r.With(review).Post("/decline", h.transitionTo(StatusDeclined))
		r.With(review).Post("/complete", h.transitionTo(StatusCompleted))
		r.With(mw.RequireAny(rbac.PermReviewBookings, rbac.PermCancelOwnBooking)).
			Post("/cancel", h.transitionTo(StatusCancelled))
	})

	r.Route("/facilities/{facilityID}", func(r chi.Router) {
		r.With(mw.RequireAny(rbac.PermViewBookings)).
			Get("/booking-requests", h.List)
		r.With(mw.RequireAny(rbac.PermViewNotifications)).
			Get("/booking-requests/pending-count", h.PendingCount)
	})

	return r
}
