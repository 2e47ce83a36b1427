package domain

import "errors"

// Kind classifies a failure so the transport layer can map it to a response
// without inspecting messages.
type Kind string

const (
	KindInvalidInput    Kind = "InvalidInput"
	KindConflict        Kind = "Conflict"
	KindUnauthenticated Kind = "Unauthenticated"
	KindUnauthorized    Kind = "Unauthorized"
	KindForbidden       Kind = "Forbidden"
	KindNotFound        Kind = "NotFound"
	KindInternal        Kind = "Internal"
)

// Error is a classified failure whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// InvalidInput builds an ad-hoc validation failure.
func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput, Message: "invalid inputs"}
	ErrInvalidBookingID    = &Error{Kind: KindInvalidInput, Message: "invalid bookingId"}
	ErrMissingBookingQuery = &Error{Kind: KindInvalidInput, Message: "provide bookingId or summary=true"}

	ErrUsernameTaken = &Error{Kind: KindConflict, Message: "username already exists"}

	ErrAuthHeaderMissing = &Error{Kind: KindUnauthenticated, Message: "authorization header missing"}
	ErrTokenMissing      = &Error{Kind: KindUnauthenticated, Message: "token missing"}
	ErrTokenInvalid      = &Error{Kind: KindUnauthenticated, Message: "token invalid"}

	// Login deliberately distinguishes an unknown user from a wrong password.
	ErrUserDoesNotExist  = &Error{Kind: KindUnauthorized, Message: "user does not exist"}
	ErrIncorrectPassword = &Error{Kind: KindUnauthorized, Message: "password is incorrect"}

	ErrBookingNotOwned = &Error{Kind: KindForbidden, Message: "booking does not belong to user"}

	ErrUserNotFound    = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrBookingNotFound = &Error{Kind: KindNotFound, Message: "booking not found"}
)

// KindOf reports the classification of err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
