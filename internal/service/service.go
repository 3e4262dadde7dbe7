package service

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-scheduler/internal/scheduling"
)

// businessErrors are rule violations caused by the request itself. They are
// logged at warn level; anything else is a server-side failure.
var businessErrors = []error{
	scheduling.ErrNotFound,
	scheduling.ErrDuplicateIdentifier,
	scheduling.ErrDuplicateNameInTerm,
	scheduling.ErrDuplicateRoomNumber,
	scheduling.ErrCourseNotFound,
	scheduling.ErrRoomNotFound,
	scheduling.ErrCourseAlreadyScheduled,
	scheduling.ErrProfessorConflict,
	scheduling.ErrRoomConflict,
	scheduling.ErrHasActiveDependents,
}

// IsBusinessError reports whether err is a deterministic rule violation.
func IsBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// logOutcome records the result of a mutation on log.
func logOutcome(log zerolog.Logger, err error, action, id string) {
	switch {
	case err == nil:
		log.Info().Str("id", id).Msg(action)
	case IsBusinessError(err):
		log.Warn().Err(err).Str("id", id).Msg(action + " rejected")
	default:
		log.Error().Err(err).Str("id", id).Msg(action + " failed")
	}
}
