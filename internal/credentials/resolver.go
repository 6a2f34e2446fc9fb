package credentials

import (
	"os"
)

// Environment variables consulted by Resolve, in priority order.
const (
	// EnvManagedRunner marks a process launched by the toolkit's managed
	// runner, where the platform injects credentials.
	EnvManagedRunner = "PERMPROOF_EXEC"

	// EnvProfile names a shared-config profile.
	EnvProfile = "AWS_PROFILE"

	// EnvToolAccessKeyID / EnvToolSecretAccessKey are the toolkit-specific
	// key pair, letting users keep a dedicated identity for permproof
	// without disturbing their default AWS environment.
	EnvToolAccessKeyID     = "PERMPROOF_AWS_ACCESS_KEY_ID"
	EnvToolSecretAccessKey = "PERMPROOF_AWS_SECRET_ACCESS_KEY"

	// EnvAccessKeyID / EnvSecretAccessKey are the generic AWS key pair.
	EnvAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
)

// Resolve determines which credential source applies. Pure function of the
// environment: no side effects, no network calls, never fails.
//
// Priority: managed runner > named profile > toolkit key pair > generic key
// pair > none. A profile outranks explicit keys because naming a profile is
// the most explicit statement of which identity to use.
func Resolve() Source {
	if os.Getenv(EnvManagedRunner) != "" {
		return Source{Kind: SourceAmbient}
	}

	if profile := os.Getenv(EnvProfile); profile != "" {
		return Source{Kind: SourceNamedProfile, Profile: profile}
	}

	if id, secret := os.Getenv(EnvToolAccessKeyID), os.Getenv(EnvToolSecretAccessKey); id != "" && secret != "" {
		return Source{Kind: SourceExplicitKeyPair, AccessKeyID: id, SecretAccessKey: secret}
	}

	if id, secret := os.Getenv(EnvAccessKeyID), os.Getenv(EnvSecretAccessKey); id != "" && secret != "" {
		return Source{Kind: SourceExplicitKeyPair, AccessKeyID: id, SecretAccessKey: secret}
	}

	return Source{Kind: SourceNone}
}
