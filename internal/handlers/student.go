package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/services"
)

// StudentHandler coordinates student HTTP handlers.
type StudentHandler struct {
	studentService *services.StudentService
	logger         *slog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *services.StudentService, logger *slog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		logger:         logger,
	}
}

// ListStudents returns all students.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.ListStudents(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentDTOs(students))
}

// GetStudent returns a single student.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetStudent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentDTO(*student))
}

// UpdateStudent applies a partial update. Omitted fields keep their stored
// value; provided empty values overwrite.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateStudentRequest struct {
		Name         *string `json:"name"`
		Password     *string `json:"password"`
		IsAdmin      *bool   `json:"is_admin"`
		UniversityID *string `json:"university_id"`
	}

	var req UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(c.Request.Context(), id, services.UpdateStudentInput{
		Name:         req.Name,
		Password:     req.Password,
		IsAdmin:      req.IsAdmin,
		UniversityID: req.UniversityID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentDTO(*student))
}

// DeleteStudent removes a student. The response reports whether a record
// existed; deleting an unknown id is not an error.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.studentService.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
