package auth

import (
	"errors"
	"net/http"

	"salonbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for accounts and verification.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	me := protected.Group("/me")
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateProfile)
		me.POST("/verify-email/request", h.RequestEmailVerification)
		me.POST("/verify-email/confirm", h.ConfirmEmail)
		me.POST("/verify-phone/request", h.RequestPhoneOTP)
		me.POST("/verify-phone/confirm", h.VerifyPhoneOTP)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email address")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"customer": customer,
		"token":    token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to log in")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"customer": customer,
		"token":    token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	customer, err := h.service.GetProfile(c.Request.Context(), c.GetInt64("customer_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	customer, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("customer_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) RequestEmailVerification(c *gin.Context) {
	err := h.service.RequestEmailVerification(c.Request.Context(), c.GetInt64("customer_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *Handler) ConfirmEmail(c *gin.Context) {
	var req ConfirmEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ConfirmEmail(c.Request.Context(), c.GetInt64("customer_id"), req.Code); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"email_verified": true})
}

func (h *Handler) RequestPhoneOTP(c *gin.Context) {
	var req RequestPhoneOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.RequestPhoneOTP(c.Request.Context(), c.GetInt64("customer_id"), req.Phone); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *Handler) VerifyPhoneOTP(c *gin.Context) {
	var req VerifyPhoneOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.VerifyPhoneOTP(c.Request.Context(), c.GetInt64("customer_id"), req.Code); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"phone_verified": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
	case errors.Is(err, ErrAlreadyVerified):
		response.Error(c, http.StatusConflict, "ALREADY_VERIFIED", "already verified")
	case errors.Is(err, ErrInvalidCode):
		response.Error(c, http.StatusBadRequest, "INVALID_CODE", "verification code is incorrect")
	case errors.Is(err, ErrCodeExpired):
		response.Error(c, http.StatusBadRequest, "CODE_EXPIRED", "verification code has expired")
	case errors.Is(err, ErrTooManyAttempts):
		response.Error(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "too many attempts, request a new code")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "operation failed")
	}
}
