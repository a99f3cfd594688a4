package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/services"
)

// parseIDParam reads the :id path parameter. On failure it writes the
// validation response and returns false.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors onto the uniform error
// envelope. Anything unrecognized is logged and reported as internal, never
// forwarded to the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrNotTaskAssignee),
		errors.Is(err, services.ErrStatusOnlyUpdate):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrParticipantNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrStartDateRequired),
		errors.Is(err, services.ErrEndDateRequired),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrUnknownRosterStudents),
		errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrProjectRequired),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrStudentNotOnRoster),
		errors.Is(err, services.ErrTextRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		if logger != nil {
			logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
		}
		apierrors.InternalError(c)
	}
}
