package code

// Default message for each error code
var codeMessageMap = map[int]string{
	ErrSuccess:           "Success",
	ErrUnknown:           "Internal server error",
	ErrBind:              "Invalid request body",
	ErrValidation:        "Request validation failed",
	ErrTokenInvalid:      "Invalid or expired token",
	ErrSetupUnauthorized: "Unauthorized setup",

	ErrFarmerNotFound:     "Farmer not found",
	ErrFarmerAlreadyExist: "Farmer already exists with this phone number, Aadhar, or Firebase UID",
	ErrFarmerLoginFailed:  "Invalid phone number or passcode",

	ErrAdminNotFound:            "Admin not found",
	ErrAdminAlreadyExist:        "Username already exists",
	ErrAdminLoginFailed:         "Invalid username or password",
	ErrCurrentPasswordIncorrect: "Current password is incorrect",

	ErrDatabase:            "Database error",
	ErrDatabaseUnavailable: "Database not available",
}

// HTTP status for each error code
var codeStatusMap = map[int]int{
	ErrSuccess:           StatusOK,
	ErrUnknown:           StatusInternalServerError,
	ErrBind:              StatusBadRequest,
	ErrValidation:        StatusBadRequest,
	ErrTokenInvalid:      StatusUnauthorized,
	ErrSetupUnauthorized: StatusUnauthorized,

	ErrFarmerNotFound:     StatusNotFound,
	ErrFarmerAlreadyExist: StatusBadRequest,
	ErrFarmerLoginFailed:  StatusUnauthorized,

	ErrAdminNotFound:            StatusNotFound,
	ErrAdminAlreadyExist:        StatusBadRequest,
	ErrAdminLoginFailed:         StatusUnauthorized,
	ErrCurrentPasswordIncorrect: StatusBadRequest,

	ErrDatabase:            StatusInternalServerError,
	ErrDatabaseUnavailable: StatusServiceUnavailable,
}

// GetMessage returns the default message for an error code
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for an error code
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
