package orders

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrRateLimited   = errors.New("too many submissions, try again later")
)

// InvalidOrderError wraps a validation failure so transport can tell bad
// input apart from infrastructure errors.
type InvalidOrderError struct {
	Reason error
}

func (e InvalidOrderError) Error() string {
	return "invalid order: " + e.Reason.Error()
}

func (e InvalidOrderError) Unwrap() error {
	return e.Reason
}
