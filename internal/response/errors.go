package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrConflict         ErrCode = "CONFLICT"
	ErrDependencyExists ErrCode = "DEPENDENCY_EXISTS"

	// ─── Catalog ───────────────────────────────────────────────────────
	ErrDuplicateCourseName ErrCode = "DUPLICATE_COURSE_NAME"
	ErrDuplicateRoomNumber ErrCode = "DUPLICATE_ROOM_NUMBER"

	// ─── Scheduling ────────────────────────────────────────────────────
	ErrCourseNotFound         ErrCode = "COURSE_NOT_FOUND"
	ErrRoomNotFound           ErrCode = "ROOM_NOT_FOUND"
	ErrCourseAlreadyScheduled ErrCode = "COURSE_ALREADY_SCHEDULED"
	ErrProfessorConflict      ErrCode = "PROFESSOR_CONFLICT"
	ErrRoomConflict           ErrCode = "ROOM_CONFLICT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrBusy     ErrCode = "SCHEDULER_BUSY"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Dados inválidos. Verifique os campos informados."
	case ErrInvalidID:
		return "Formato de ID inválido."
	case ErrInvalidPayload:
		return "Corpo da requisição inválido."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso não encontrado."
	case ErrConflict:
		return "Recurso já existe."
	case ErrDependencyExists:
		return "Não é possível excluir: existem turmas ativas vinculadas."

	// ─── Catalog ───────────────────────────────────────────────────────
	case ErrDuplicateCourseName:
		return "Já existe uma disciplina com este nome no semestre especificado."
	case ErrDuplicateRoomNumber:
		return "Já existe uma sala com este número."

	// ─── Scheduling ────────────────────────────────────────────────────
	case ErrCourseNotFound:
		return "Disciplina não encontrada."
	case ErrRoomNotFound:
		return "Sala não encontrada."
	case ErrCourseAlreadyScheduled:
		return "Já existe uma turma para esta disciplina no semestre especificado."
	case ErrProfessorConflict:
		return "Este professor já possui uma turma no mesmo dia da semana neste semestre."
	case ErrRoomConflict:
		return "Esta sala já está ocupada no mesmo dia da semana neste semestre."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrBusy:
		return "O agendador está ocupado. Tente novamente em instantes."
	case ErrInternal:
		return "Erro interno do servidor."
	default:
		return "Ocorreu um erro inesperado."
	}
}
