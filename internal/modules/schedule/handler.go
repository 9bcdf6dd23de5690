package schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"salonbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *Service
	defaultDays int
}

func NewHandler(service *Service, defaultDays int) *Handler {
	return &Handler{service: service, defaultDays: defaultDays}
}

// RegisterRoutes mounts the public read-only availability endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/time-slots", h.ListAvailability)
}

// RegisterAdminRoutes mounts slot management endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/time-slots", h.CreateSlot)
	rg.POST("/time-slots/generate", h.GenerateSlots)
	rg.POST("/time-slots/:id/block", h.BlockSlot)
	rg.POST("/time-slots/:id/unblock", h.UnblockSlot)
}

// ListAvailability returns open slots grouped by date. With ?staff_id the
// enumeration is pinned to one staff member; without it, duplicate start
// times across staff collapse into a single offering.
func (h *Handler) ListAvailability(c *gin.Context) {
	days := h.defaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "days must be a positive integer")
			return
		}
		days = n
	}

	from := time.Now()
	if raw := c.Query("start_date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start_date must be YYYY-MM-DD")
			return
		}
		from = d
	}

	var (
		out []DayAvailability
		err error
	)
	if raw := c.Query("staff_id"); raw != "" {
		staffID, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "staff_id must be an integer")
			return
		}
		out, err = h.service.StaffAvailability(c.Request.Context(), staffID, from, days)
	} else {
		out, err = h.service.AnyStaffAvailability(c.Request.Context(), from, days)
	}

	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid availability query")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"days": out})
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end_time must be after start_time and capacity >= 1")
		case errors.Is(err, ErrSlotExists):
			response.Error(c, http.StatusConflict, "SLOT_EXISTS", "A slot for this staff member already starts at this time")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create slot")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"time_slot": slot})
}

func (h *Handler) GenerateSlots(c *gin.Context) {
	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	created, err := h.service.GenerateSlots(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid generation window")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to generate slots")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"created": created})
}

func (h *Handler) BlockSlot(c *gin.Context)   { h.setBlocked(c, true) }
func (h *Handler) UnblockSlot(c *gin.Context) { h.setBlocked(c, false) }

func (h *Handler) setBlocked(c *gin.Context, blocked bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer")
		return
	}

	if err := h.service.BlockSlot(c.Request.Context(), id, blocked); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "time slot not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update slot")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_blocked": blocked})
}
