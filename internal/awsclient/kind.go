package awsclient

// ServiceKind identifies a supported service client category. The set is
// closed: an unknown kind reaching the cache is a programming error, not a
// user-facing condition.
type ServiceKind string

const (
	// KindS3 is object storage
	KindS3 ServiceKind = "s3"

	// KindLogs is CloudWatch Logs
	KindLogs ServiceKind = "logs"

	// KindIAM is identity management (also hosts policy simulation)
	KindIAM ServiceKind = "iam"

	// KindSTS is the security token service
	KindSTS ServiceKind = "sts"

	// KindLambda is function execution
	KindLambda ServiceKind = "lambda"

	// KindQuotas is Service Quotas
	KindQuotas ServiceKind = "quotas"
)

// String returns the string representation of the service kind
func (k ServiceKind) String() string {
	return string(k)
}

// IsValid returns true if the service kind is a member of the closed set
func (k ServiceKind) IsValid() bool {
	switch k {
	case KindS3, KindLogs, KindIAM, KindSTS, KindLambda, KindQuotas:
		return true
	default:
		return false
	}
}
