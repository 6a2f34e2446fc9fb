package errors

// ErrorCode represents an application-specific error code
type ErrorCode string

const (
	// Generic errors
	ErrUnknown         ErrorCode = "ERR_UNKNOWN"
	ErrInternal        ErrorCode = "ERR_INTERNAL"
	ErrInvalidArgument ErrorCode = "ERR_INVALID_ARGUMENT"

	// Client cache errors
	ErrUnknownServiceKind ErrorCode = "ERR_UNKNOWN_SERVICE_KIND"
	ErrClientConstruction ErrorCode = "ERR_CLIENT_CONSTRUCTION"

	// Credential errors
	ErrCredentialsMissing ErrorCode = "ERR_CREDENTIALS_MISSING"

	// Identity errors
	ErrNoIdentity             ErrorCode = "ERR_NO_IDENTITY"
	ErrUnsupportedIdentity    ErrorCode = "ERR_UNSUPPORTED_IDENTITY"
	ErrUnsupportedAssumedRole ErrorCode = "ERR_UNSUPPORTED_ASSUMED_ROLE"

	// Simulation errors
	ErrSimulationFailed ErrorCode = "ERR_SIMULATION_FAILED"

	// Configuration errors
	ErrConfigInvalid      ErrorCode = "ERR_CONFIG_INVALID"
	ErrConfigLoadFailed   ErrorCode = "ERR_CONFIG_LOAD_FAILED"
	ErrConfigMissingField ErrorCode = "ERR_CONFIG_MISSING_FIELD"

	// Validation errors
	ErrValidationFailed ErrorCode = "ERR_VALIDATION_FAILED"
)

// ErrorInfo contains metadata about an error code
type ErrorInfo struct {
	Code   ErrorCode
	Type   string
	Status int
	Title  string
}

// errorInfoMap maps error codes to their metadata
var errorInfoMap = map[ErrorCode]ErrorInfo{
	ErrUnknown: {
		Code:   ErrUnknown,
		Type:   "https://permproof.dev/errors/unknown",
		Status: 500,
		Title:  "Unknown Error",
	},
	ErrInternal: {
		Code:   ErrInternal,
		Type:   "https://permproof.dev/errors/internal",
		Status: 500,
		Title:  "Internal Error",
	},
	ErrInvalidArgument: {
		Code:   ErrInvalidArgument,
		Type:   "https://permproof.dev/errors/invalid-argument",
		Status: 400,
		Title:  "Invalid Argument",
	},

	// ErrUnknownServiceKind is a programming error: the service kind enum
	// is closed, so hitting this at runtime means a caller bypassed it
	ErrUnknownServiceKind: {
		Code:   ErrUnknownServiceKind,
		Type:   "https://permproof.dev/errors/unknown-service-kind",
		Status: 500,
		Title:  "Unknown Service Kind",
	},
	ErrClientConstruction: {
		Code:   ErrClientConstruction,
		Type:   "https://permproof.dev/errors/client-construction",
		Status: 500,
		Title:  "Client Construction Failed",
	},

	ErrCredentialsMissing: {
		Code:   ErrCredentialsMissing,
		Type:   "https://permproof.dev/errors/credentials-missing",
		Status: 401,
		Title:  "Credentials Missing",
	},

	ErrNoIdentity: {
		Code:   ErrNoIdentity,
		Type:   "https://permproof.dev/errors/no-identity",
		Status: 401,
		Title:  "No Caller Identity",
	},
	ErrUnsupportedIdentity: {
		Code:   ErrUnsupportedIdentity,
		Type:   "https://permproof.dev/errors/unsupported-identity",
		Status: 400,
		Title:  "Unsupported Identity",
	},
	ErrUnsupportedAssumedRole: {
		Code:   ErrUnsupportedAssumedRole,
		Type:   "https://permproof.dev/errors/unsupported-assumed-role",
		Status: 400,
		Title:  "Unsupported Assumed Role",
	},

	ErrSimulationFailed: {
		Code:   ErrSimulationFailed,
		Type:   "https://permproof.dev/errors/simulation-failed",
		Status: 502,
		Title:  "Simulation Failed",
	},

	ErrConfigInvalid: {
		Code:   ErrConfigInvalid,
		Type:   "https://permproof.dev/errors/config-invalid",
		Status: 500,
		Title:  "Invalid Configuration",
	},
	ErrConfigLoadFailed: {
		Code:   ErrConfigLoadFailed,
		Type:   "https://permproof.dev/errors/config-load-failed",
		Status: 500,
		Title:  "Configuration Load Failed",
	},
	ErrConfigMissingField: {
		Code:   ErrConfigMissingField,
		Type:   "https://permproof.dev/errors/config-missing-field",
		Status: 500,
		Title:  "Missing Configuration Field",
	},
	ErrValidationFailed: {
		Code:   ErrValidationFailed,
		Type:   "https://permproof.dev/errors/validation-failed",
		Status: 400,
		Title:  "Validation Failed",
	},
}

// GetErrorInfo returns metadata for an error code
func GetErrorInfo(code ErrorCode) ErrorInfo {
	if info, ok := errorInfoMap[code]; ok {
		return info
	}
	return errorInfoMap[ErrUnknown]
}

// IsUserError returns true if the error code points at the caller's
// environment or input rather than a bug in the toolkit
func IsUserError(code ErrorCode) bool {
	userCodes := []ErrorCode{
		ErrCredentialsMissing,
		ErrNoIdentity,
		ErrUnsupportedIdentity,
		ErrUnsupportedAssumedRole,
		ErrConfigInvalid,
		ErrConfigMissingField,
		ErrValidationFailed,
		ErrInvalidArgument,
	}

	for _, c := range userCodes {
		if code == c {
			return true
		}
	}
	return false
}
