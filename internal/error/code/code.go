package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: invalid request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: missing or invalid credentials.
	StatusUnauthorized = 401
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusInternalServerError - 500: unexpected server error.
	StatusInternalServerError = 500
	// StatusServiceUnavailable - 503: backing store not available.
	StatusServiceUnavailable = 503
)

// General error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding error.
	ErrBind
	// ErrValidation - 400: request validation error.
	ErrValidation
	// ErrTokenInvalid - 401: invalid or expired token.
	ErrTokenInvalid
	// ErrSetupUnauthorized - 401: setup secret mismatch.
	ErrSetupUnauthorized
)

// Farmer error codes (101xxx).
const (
	// ErrFarmerNotFound - 404: farmer does not exist.
	ErrFarmerNotFound int = iota + 101000
	// ErrFarmerAlreadyExist - 400: duplicate phone, Aadhar, or Firebase UID.
	ErrFarmerAlreadyExist
	// ErrFarmerLoginFailed - 401: phone/passcode pair did not match.
	ErrFarmerLoginFailed
)

// Admin error codes (102xxx).
const (
	// ErrAdminNotFound - 404: admin does not exist.
	ErrAdminNotFound int = iota + 102000
	// ErrAdminAlreadyExist - 400: username already taken.
	ErrAdminAlreadyExist
	// ErrAdminLoginFailed - 401: username/password pair did not match.
	ErrAdminLoginFailed
	// ErrCurrentPasswordIncorrect - 400: credential rotation with a bad current password.
	ErrCurrentPasswordIncorrect
)

// Store error codes (105xxx).
const (
	// ErrDatabase - 500: database error.
	ErrDatabase int = iota + 105000
	// ErrDatabaseUnavailable - 503: database connection not available.
	ErrDatabaseUnavailable
)
