package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/lock"
	"github.com/stemsi/exstem-scheduler/internal/response"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// errorMappings pair core error kinds with their HTTP status and code.
// The first match wins.
var errorMappings = []struct {
	kind   error
	status int
	code   response.ErrCode
}{
	{scheduling.ErrCourseNotFound, http.StatusBadRequest, response.ErrCourseNotFound},
	{scheduling.ErrRoomNotFound, http.StatusBadRequest, response.ErrRoomNotFound},
	{scheduling.ErrCourseAlreadyScheduled, http.StatusConflict, response.ErrCourseAlreadyScheduled},
	{scheduling.ErrProfessorConflict, http.StatusConflict, response.ErrProfessorConflict},
	{scheduling.ErrRoomConflict, http.StatusConflict, response.ErrRoomConflict},
	{scheduling.ErrDuplicateNameInTerm, http.StatusConflict, response.ErrDuplicateCourseName},
	{scheduling.ErrDuplicateRoomNumber, http.StatusConflict, response.ErrDuplicateRoomNumber},
	{scheduling.ErrHasActiveDependents, http.StatusConflict, response.ErrDependencyExists},
	{scheduling.ErrDuplicateIdentifier, http.StatusConflict, response.ErrConflict},
	{scheduling.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
	{lock.ErrLockTimeout, http.StatusServiceUnavailable, response.ErrBusy},
}

// fail writes the envelope for err. Unknown errors are logged and reported
// as internal errors without leaking their text.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.kind) {
			continue
		}

		var conflict *scheduling.ConflictError
		if errors.As(err, &conflict) {
			response.FailWithDetails(c, m.status, m.code, map[string]interface{}{
				"conflicting_section_id": conflict.SectionID,
			})
			return
		}
		var dependents *scheduling.DependentsError
		if errors.As(err, &dependents) {
			response.FailWithDetails(c, m.status, m.code, map[string]interface{}{
				"active_sections": dependents.Count,
			})
			return
		}

		response.Fail(c, m.status, m.code)
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("request_id", response.RequestID(c)).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// pathID validates the :id parameter. It writes the error response and
// returns false when the parameter is not a UUID.
func pathID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id.String(), true
}
