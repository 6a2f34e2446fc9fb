package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permproof/permproof/pkg/errors"
)

func TestNormalizePrincipal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		wantErr  bool
		wantCode errors.ErrorCode
	}{
		{
			name: "IAM user passes through unchanged",
			raw:  "arn:aws:iam::123456789012:user/alice",
			want: "arn:aws:iam::123456789012:user/alice",
		},
		{
			name: "IAM user with path",
			raw:  "arn:aws:iam::123456789012:user/team/alice",
			want: "arn:aws:iam::123456789012:user/team/alice",
		},
		{
			name: "assumed role rewrites to role",
			raw:  "arn:aws:sts::123456789012:assumed-role/MyRole/session-1",
			want: "arn:aws:iam::123456789012:role/MyRole",
		},
		{
			name:     "assumed role without session segment",
			raw:      "arn:aws:sts::123456789012:assumed-role/onlyrole",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedAssumedRole,
		},
		{
			name:     "assumed role with empty session",
			raw:      "arn:aws:sts::123456789012:assumed-role/MyRole/",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedAssumedRole,
		},
		{
			name:     "assumed role with no role name",
			raw:      "arn:aws:sts::123456789012:assumed-role",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedAssumedRole,
		},
		{
			name:     "ec2 instance is unsupported",
			raw:      "arn:aws:ec2::123456789012:instance/i-abc",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
		{
			name:     "iam role is unsupported as raw identity",
			raw:      "arn:aws:iam::123456789012:role/MyRole",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
		{
			name:     "iam user without name",
			raw:      "arn:aws:iam::123456789012:user",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
		{
			name:     "not an ARN",
			raw:      "alice@example.com",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
		{
			name:     "wrong partition prefix",
			raw:      "urn:aws:iam::123456789012:user/alice",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
		{
			name:     "empty string",
			raw:      "",
			wantErr:  true,
			wantCode: errors.ErrUnsupportedIdentity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePrincipal(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantCode),
					"expected code %s, got %s", tt.wantCode, errors.GetCode(err))
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizePrincipal_DistinctRejectionCodes(t *testing.T) {
	_, userErr := NormalizePrincipal("arn:aws:ec2::123456789012:instance/i-abc")
	_, roleErr := NormalizePrincipal("arn:aws:sts::123456789012:assumed-role/onlyrole")

	require.Error(t, userErr)
	require.Error(t, roleErr)
	assert.NotEqual(t, errors.GetCode(userErr), errors.GetCode(roleErr))
}
