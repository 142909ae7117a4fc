package models

// ErrorKind is the closed, machine-checkable taxonomy of engine failures.
// Every kind is recovered at the request boundary and surfaced as a
// structured client error; none are retried by the engine.
type ErrorKind string

const (
	ErrKindForbidden          ErrorKind = "forbidden"
	ErrKindNotFound           ErrorKind = "not_found"
	ErrKindInactiveRoom       ErrorKind = "inactive_room"
	ErrKindSessionAlreadyOpen ErrorKind = "session_already_open"
	ErrKindNoOpenSession      ErrorKind = "no_open_session"
	ErrKindSessionNotOpen     ErrorKind = "session_not_open"
	ErrKindPhotoLimitReached  ErrorKind = "photo_limit_reached"
	ErrKindPhotoProofRequired ErrorKind = "photo_proof_required"
	ErrKindNotOwner           ErrorKind = "not_owner"
	ErrKindValidation         ErrorKind = "validation"
)

// DomainError pairs a stable kind with a human-readable detail message.
type DomainError struct {
	Kind   ErrorKind
	Detail string
}

func (e *DomainError) Error() string {
	return e.Detail
}

// Is makes errors.Is match on kind so wrapped domain errors still compare
// against the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrForbidden          = &DomainError{ErrKindForbidden, "you do not have permission to perform this action"}
	ErrRoomNotFound       = &DomainError{ErrKindNotFound, "room not found"}
	ErrSessionNotFound    = &DomainError{ErrKindNotFound, "cleaning session not found"}
	ErrInactiveRoom       = &DomainError{ErrKindInactiveRoom, "inactive room"}
	ErrSessionAlreadyOpen = &DomainError{ErrKindSessionAlreadyOpen, "room already in cleaning"}
	ErrNoOpenSession      = &DomainError{ErrKindNoOpenSession, "no open session"}
	ErrSessionNotOpen     = &DomainError{ErrKindSessionNotOpen, "session already completed"}
	ErrPhotoLimitReached  = &DomainError{ErrKindPhotoLimitReached, "photo limit reached"}
	ErrPhotoProofRequired = &DomainError{ErrKindPhotoProofRequired, "photo proof required"}
	ErrNotOwner           = &DomainError{ErrKindNotOwner, "session does not belong to this user"}
	ErrInactiveRoomDelete = &DomainError{ErrKindValidation, "inactive rooms cannot be deleted, activate the room first"}
)

// NewValidationError builds a request-level validation failure.
func NewValidationError(detail string) *DomainError {
	return &DomainError{Kind: ErrKindValidation, Detail: detail}
}
