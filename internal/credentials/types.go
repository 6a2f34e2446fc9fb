package credentials

// SourceKind identifies which credential source applies to this process
type SourceKind string

const (
	// SourceAmbient means the process runs inside the managed execution
	// environment and credentials are injected by the platform
	SourceAmbient SourceKind = "ambient"

	// SourceNamedProfile means a shared-config profile was named via the
	// environment
	SourceNamedProfile SourceKind = "profile"

	// SourceExplicitKeyPair means an access key pair was supplied via the
	// environment
	SourceExplicitKeyPair SourceKind = "static"

	// SourceNone defers entirely to the SDK default resolution chain
	SourceNone SourceKind = "none"
)

// Source is the outcome of credential resolution. Exactly one variant is
// selected per call; fields beyond Kind are set only for the variant that
// uses them.
type Source struct {
	Kind SourceKind

	// Profile is set for SourceNamedProfile
	Profile string

	// AccessKeyID and SecretAccessKey are set for SourceExplicitKeyPair
	AccessKeyID     string
	SecretAccessKey string
}

// Custom is an optional override that bypasses source resolution and targets
// a fixed custom endpoint (e.g. a local cloud emulator). Keys are optional;
// when absent the resolved source still supplies credentials. Instances come
// from an already-validated EndpointConfig; the json tags feed the cache
// fingerprint descriptor.
type Custom struct {
	Endpoint        string `json:"endpoint"`
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
}
