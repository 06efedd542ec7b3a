package policy

import "errors"

// Kind distinguishes policy failures so handlers can render specific
// messages instead of a generic 400.
type Kind int

const (
	KindEmpty Kind = iota
	KindTooLong
	KindInvalidValue
	KindLimitReached
	KindAlreadyExists
	KindDuplicateName
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf reports the policy kind of err, or false if err is not a policy
// error.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is a policy error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ErrNotFound masks both genuinely absent entities and cross-owner access.
// Handlers must never distinguish the two.
var ErrNotFound = newError(KindNotFound, "not found")
