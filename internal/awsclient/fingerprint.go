package awsclient

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/permproof/permproof/internal/credentials"
)

// descriptor is the canonical cache-key input. A named profile is recorded
// as a marker instead of its resolved secret values: the profile name alone
// discriminates the identity, while two different explicit key pairs still
// land in the carried key fields. json.Marshal of a struct emits fields in
// declaration order, so serialization is deterministic.
type descriptor struct {
	Ambient         bool                `json:"ambient,omitempty"`
	Profile         string              `json:"profile,omitempty"`
	AccessKeyID     string              `json:"access_key_id,omitempty"`
	SecretAccessKey string              `json:"secret_access_key,omitempty"`
	Custom          *credentials.Custom `json:"custom,omitempty"`
	Region          string              `json:"region"`
	Service         ServiceKind         `json:"service"`
}

// Fingerprint computes the stable cache key for a client configuration.
// Equal configurations always produce equal fingerprints; any difference in
// region, service, profile, endpoint or key material produces a different
// digest. Only the digest is ever stored or logged, never the descriptor.
func Fingerprint(source credentials.Source, region string, kind ServiceKind, custom *credentials.Custom) string {
	d := descriptor{
		Custom:  custom,
		Region:  region,
		Service: kind,
	}

	switch source.Kind {
	case credentials.SourceAmbient:
		d.Ambient = true
	case credentials.SourceNamedProfile:
		d.Profile = source.Profile
	case credentials.SourceExplicitKeyPair:
		d.AccessKeyID = source.AccessKeyID
		d.SecretAccessKey = source.SecretAccessKey
	}

	raw, err := json.Marshal(d)
	if err != nil {
		// A flat struct of strings cannot fail to marshal
		panic(err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
