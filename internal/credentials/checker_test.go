package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permproof/permproof/pkg/logger"
)

func TestChecker_Check_ExplicitSourcesPass(t *testing.T) {
	tests := []struct {
		name   string
		source Source
	}{
		{
			name:   "ambient source is trusted",
			source: Source{Kind: SourceAmbient},
		},
		{
			name:   "named profile is trusted",
			source: Source{Kind: SourceNamedProfile, Profile: "staging"},
		},
		{
			name:   "explicit key pair is trusted",
			source: Source{Kind: SourceExplicitKeyPair, AccessKeyID: "AKIA", SecretAccessKey: "secret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(logger.Nop())
			checker.resolve = func() Source { return tt.source }

			err := checker.Check(context.Background())
			assert.NoError(t, err)
		})
	}
}

func TestChecker_Check_NoneProbesDefaultChain(t *testing.T) {
	clearCredentialEnv(t)
	// Point the SDK away from any real shared config so the default chain
	// has nothing to find
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	checker := NewChecker(logger.Nop())
	checker.resolve = func() Source { return Source{Kind: SourceNone} }

	err := checker.Check(context.Background())
	require.Error(t, err)
}
