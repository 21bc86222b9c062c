package booking

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/DigitariaWebs/puneet-sub015/internal/observability"
	"github.com/DigitariaWebs/puneet-sub015/internal/platform/httpx"
)

// Handler exposes the ledger to the console surfaces. It is a transport
// adapter only; every lifecycle rule lives in the ledger.
type Handler struct {
	ledger   *Ledger
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *observability.Metrics
	newID    func() string
	now      func() time.Time
}

// NewHandler creates a handler over the ledger. metrics may be nil.
func NewHandler(ledger *Ledger, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		ledger:   ledger,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
		newID:    func() string { return "BR-" + uuid.NewString() },
		now:      time.Now,
	}
}

// CreateRequest is the intake payload for a new booking request. The
// caller never supplies id or status; both are assigned here.
type CreateRequest struct {
	FacilityID    int64     `json:"facility_id" validate:"required,gt=0"`
	ClientID      int64     `json:"client_id" validate:"required,gt=0"`
	ClientName    string    `json:"client_name" validate:"required"`
	ClientContact string    `json:"client_contact" validate:"required"`
	PetID         int64     `json:"pet_id" validate:"required,gt=0"`
	PetName       string    `json:"pet_name" validate:"required"`
	Services      []string  `json:"services" validate:"required,min=1,dive,required"`
	AppointmentAt time.Time `json:"appointment_at" validate:"required"`
}

// Create handles POST /booking-requests.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	rec := BookingRequest{
		ID:            h.newID(),
		FacilityID:    req.FacilityID,
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientContact: req.ClientContact,
		PetID:         req.PetID,
		PetName:       req.PetName,
		Services:      req.Services,
		CreatedAt:     h.now().UTC(),
		AppointmentAt: req.AppointmentAt,
	}
	created, err := h.ledger.Create(r.Context(), rec)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.recordPending(created.FacilityID)
	httpx.JSON(w, http.StatusCreated, created)
}

// transitionTo builds a handler applying one lifecycle transition to the
// request identified by the URL.
func (h *Handler) transitionTo(target Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec, err := h.ledger.Transition(r.Context(), id, target)
		if err != nil {
			h.respondError(w, err)
			return
		}
		h.recordPending(rec.FacilityID)
		httpx.JSON(w, http.StatusOK, rec)
	}
}

// List handles GET /facilities/{facilityID}/booking-requests.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := h.facilityID(w, r)
	if !ok {
		return
	}
	var filter []Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !status.IsValid() {
			httpx.Problemf(w, http.StatusBadRequest, "Validation Failed", "unknown status %q", raw)
			return
		}
		filter = append(filter, status)
	}
	httpx.JSON(w, http.StatusOK, h.ledger.ListByFacility(facilityID, filter...))
}

// PendingCountResponse pairs the raw aggregate with its display badge.
type PendingCountResponse struct {
	Count int    `json:"count"`
	Badge string `json:"badge"`
}

// PendingCount handles GET /facilities/{facilityID}/booking-requests/pending-count.
func (h *Handler) PendingCount(w http.ResponseWriter, r *http.Request) {
	facilityID, ok := h.facilityID(w, r)
	if !ok {
		return
	}
	count := h.ledger.CountPending(facilityID)
	h.recordPending(facilityID)
	httpx.JSON(w, http.StatusOK, PendingCountResponse{Count: count, Badge: Badge(count)})
}

func (h *Handler) facilityID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "facilityID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httpx.Problemf(w, http.StatusBadRequest, "Validation Failed", "invalid facility id %q", raw)
		return 0, false
	}
	return id, true
}

func (h *Handler) recordPending(facilityID int64) {
	if h.metrics == nil {
		return
	}
	h.metrics.SetPendingRequests(facilityID, h.ledger.CountPending(facilityID))
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrDuplicateID):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		// The review surface shows "already handled" off this response.
		httpx.Problem(w, http.StatusConflict, "Invalid Transition", err.Error())
	case errors.Is(err, ErrInvalidRecord):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		if h.logger != nil {
			h.logger.Error("booking request failed", slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
