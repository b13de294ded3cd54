package types

import "errors"

var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbiddenRole        = errors.New("account type not permitted")
	ErrForbiddenOwnership   = errors.New("resource owned by another account")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrRetractionNotAllowed = errors.New("accepted signups cannot be retracted")

	// ErrDuplicateSignup is raised by the store on a (volunteer, event)
	// uniqueness violation. The signup service absorbs it: a second signup
	// for the same event reports success with AlreadySignedUp set.
	ErrDuplicateSignup = errors.New("signup already exists")
)
