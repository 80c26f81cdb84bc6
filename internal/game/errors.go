package game

import "errors"

var (
	ErrNotFound       = errors.New("unknown player")
	ErrInvalidPhase   = errors.New("operation not valid in current phase")
	ErrInvalidContent = errors.New("content rejected")
	ErrInvalidMode    = errors.New("mode does not support this operation")
	ErrUnauthorized   = errors.New("host key required")
	ErrSelfTarget     = errors.New("cannot vote for yourself")
)

// ErrorKind returns a stable machine-readable token for an error so the
// boundary can map it to a response without string matching. Unrecognized
// errors map to "bad_request".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidPhase):
		return "invalid_phase"
	case errors.Is(err, ErrInvalidContent):
		return "invalid_content"
	case errors.Is(err, ErrInvalidMode):
		return "invalid_mode"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrSelfTarget):
		return "self_target"
	default:
		return "bad_request"
	}
}
