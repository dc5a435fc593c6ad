package domain

import "fmt"

// Error is a coded failure; the HTTP layer maps codes onto statuses and
// problem+json bodies.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

var (
	ErrNotFound             = &Error{Code: "NOT_FOUND", Message: "resource not found"}
	ErrInvalidCredentials   = &Error{Code: "INVALID_CREDENTIALS", Message: "email or password is incorrect"}
	ErrEmailExists          = &Error{Code: "EMAIL_EXISTS", Message: "email is already registered"}
	ErrUserNotFound         = &Error{Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrNoSession            = &Error{Code: "NO_SESSION", Message: "authentication required"}
	ErrCardInvalid          = &Error{Code: "CARD_INVALID", Message: "card details are invalid"}
	ErrCardExpired          = &Error{Code: "CARD_EXPIRED", Message: "card is expired"}
	ErrRoomUnavailable      = &Error{Code: "ROOM_UNAVAILABLE", Message: "room is not available"}
	ErrReservationCompleted = &Error{Code: "RESERVATION_COMPLETED", Message: "stay is already completed"}
)
