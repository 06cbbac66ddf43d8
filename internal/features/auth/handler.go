package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/config"
	"github.com/tribunal-app/tribunal/internal/pkg/response"
	"github.com/tribunal-app/tribunal/internal/pkg/token"
)

type Handler struct {
	validator *CredentialValidator
	cfg       *config.Config
}

func NewHandler(validator *CredentialValidator, cfg *config.Config) *Handler {
	return &Handler{
		validator: validator,
		cfg:       cfg,
	}
}

// Authenticate godoc
// @Summary Establish a moderator session
// @Description Check the password against the configured credential hashes
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthRequest true "Credential"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth [post]
func (h *Handler) Authenticate(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_JSON")
		return
	}

	if req.Password == "" {
		response.BadRequest(c, "Missing password", "VALIDATION_FAILED")
		return
	}

	// Fails closed when no hashes are configured: every candidate is
	// rejected without comparison.
	if !h.validator.Validate(req.Password) {
		response.Unauthorized(c, "Invalid password", "AUTH_FAILED")
		return
	}

	sessionToken, err := token.Generate(h.cfg.JWTSecret, time.Duration(h.cfg.JWTExpireHours)*time.Hour)
	if err != nil {
		response.InternalServerError(c, "Failed to generate token", "TOKEN_ERROR")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   sessionToken,
	})
}

// Session godoc
// @Summary Check a moderator session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/session [get]
func (h *Handler) Session(c *gin.Context) {
	response.OK(c, "Session valid")
}
