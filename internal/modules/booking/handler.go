package booking

import (
	"errors"
	"net/http"
	"strconv"

	"salonbooking/internal/domain"
	"salonbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts endpoints usable without authentication. Guests create
// bookings with contact fields and manage them through the confirmation code.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/code/:code", h.GetByCode)
	rg.POST("/bookings/code/:code/cancel", h.CancelByCode)
}

// RegisterCustomerRoutes mounts endpoints that require a logged-in customer.
func (h *Handler) RegisterCustomerRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
}

// RegisterAdminRoutes mounts lifecycle operations reserved for staff/admin.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/confirm", h.ConfirmBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	var identity domain.Identity
	if customerID := c.GetInt64("customer_id"); customerID != 0 {
		identity = domain.RegisteredIdentity(customerID)
	} else {
		identity = domain.GuestIdentity(req.GuestEmail, req.GuestName, req.GuestPhone)
	}

	b, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	customerID := c.GetInt64("customer_id")
	out, err := h.service.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, ok := h.loadOwned(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	b, ok := h.loadOwned(c)
	if !ok {
		return
	}

	canceled, err := h.service.Cancel(c.Request.Context(), b.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": canceled})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer")
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetByCode(c *gin.Context) {
	b, err := h.service.GetByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelByCode(c *gin.Context) {
	b, err := h.service.GetByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	canceled, err := h.service.Cancel(c.Request.Context(), b.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": canceled})
}

// loadOwned fetches the booking and enforces that it belongs to the
// authenticated customer (admins bypass).
func (h *Handler) loadOwned(c *gin.Context) (*domain.Booking, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer")
		return nil, false
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}

	customerID := c.GetInt64("customer_id")
	role := c.GetString("role")
	if role != string(domain.RoleAdmin) {
		if b.CustomerID == nil || *b.CustomerID != customerID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "booking belongs to another customer")
			return nil, false
		}
	}
	return b, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGuestEmailRequired), errors.Is(err, ErrGuestEmailInvalid):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrServiceNotOffered), errors.Is(err, ErrSlotMismatch),
		errors.Is(err, ErrSlotUnavailable), errors.Is(err, ErrOverlap):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, ErrAlreadyConfirmed), errors.Is(err, ErrCannotConfirm),
		errors.Is(err, ErrCannotCancel):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "booking operation failed")
	}
}
