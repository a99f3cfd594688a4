package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/middleware"
	"github.com/studenthub/studenthub-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignUp registers a new student and returns a token alongside the record.
func (h *AuthHandler) SignUp(c *gin.Context) {
	type SignUpRequest struct {
		Name         string `json:"name" binding:"required"`
		Password     string `json:"password" binding:"required"`
		IsAdmin      bool   `json:"is_admin"`
		UniversityID string `json:"university_id"`
	}

	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	student, token, err := h.authService.SignUp(c.Request.Context(), services.SignUpInput{
		Name:         req.Name,
		Password:     req.Password,
		IsAdmin:      req.IsAdmin,
		UniversityID: req.UniversityID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthPayloadDTO{
		Token: token,
		User:  dto.ToStudentDTO(*student),
	})
}

// SignIn authenticates a student and returns a fresh token.
func (h *AuthHandler) SignIn(c *gin.Context) {
	type SignInRequest struct {
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	student, token, err := h.authService.SignIn(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthPayloadDTO{
		Token: token,
		User:  dto.ToStudentDTO(*student),
	})
}

// Me returns the caller's own record.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthenticated(c)
		return
	}

	student, err := h.authService.GetStudent(c.Request.Context(), identity.StudentID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentDTO(*student))
}
