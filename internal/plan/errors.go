package plan

import "errors"

var (
	// ErrInvalidInput reports a request that cannot be served as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrStoreUnavailable wraps failures of the backing menu store.
	ErrStoreUnavailable = errors.New("menu store unavailable")
	// ErrNoPlan means the user has no menus inside the current plan window.
	ErrNoPlan = errors.New("no plan")
	// ErrMenuNotFound is returned when a menu id does not exist.
	ErrMenuNotFound = errors.New("menu not found")
)
