package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCredentialsMissing, "no usable credentials")

	assert.Equal(t, ErrCredentialsMissing, err.Code)
	assert.Equal(t, "no usable credentials", err.Title)
	assert.Equal(t, 401, err.Status)
	assert.Equal(t, "https://permproof.dev/errors/credentials-missing", err.Type)
	assert.Equal(t, "no usable credentials", err.Error())
}

func TestNew_UnknownCodeFallsBack(t *testing.T) {
	err := New(ErrorCode("ERR_NOT_REGISTERED"), "something")

	assert.Equal(t, ErrorCode("ERR_NOT_REGISTERED"), err.Code)
	assert.Equal(t, 500, err.Status)
	assert.Equal(t, "https://permproof.dev/errors/unknown", err.Type)
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrSimulationFailed, cause, "policy simulation failed")

	assert.Equal(t, ErrSimulationFailed, err.Code)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, "policy simulation failed: connection refused", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestError_WithDetail(t *testing.T) {
	err := New(ErrConfigInvalid, "invalid configuration").WithDetail("level must be one of debug, info, warn, error")

	assert.Equal(t, "invalid configuration: level must be one of debug, info, warn, error", err.Error())
}

func TestError_WithField(t *testing.T) {
	err := New(ErrConfigLoadFailed, "failed to read config file").
		WithField("path", "/etc/permproof.yaml").
		WithField("attempt", 1)

	assert.Equal(t, "/etc/permproof.yaml", err.Fields["path"])
	assert.Equal(t, 1, err.Fields["attempt"])
}

func TestIs(t *testing.T) {
	err := New(ErrNoIdentity, "caller identity has no ARN")

	assert.True(t, Is(err, ErrNoIdentity))
	assert.False(t, Is(err, ErrUnsupportedIdentity))
	assert.False(t, Is(stderrors.New("plain"), ErrNoIdentity))
	assert.False(t, Is(nil, ErrNoIdentity))
}

func TestIs_WrappedInPlainError(t *testing.T) {
	inner := New(ErrUnsupportedAssumedRole, "assumed-role ARN is missing the role name")
	outer := fmt.Errorf("checking identity: %w", inner)

	assert.True(t, Is(outer, ErrUnsupportedAssumedRole))
	assert.Equal(t, ErrUnsupportedAssumedRole, GetCode(outer))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrSimulationFailed, GetCode(New(ErrSimulationFailed, "boom")))
	assert.Equal(t, ErrUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrUnknown, GetCode(nil))
}

func TestError_MarshalJSON(t *testing.T) {
	err := Wrap(ErrClientConstruction, stderrors.New("dial timeout"), "failed to construct client").
		WithField("service", "sts")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "ERR_CLIENT_CONSTRUCTION", decoded["code"])
	assert.Equal(t, "failed to construct client", decoded["title"])
	assert.Equal(t, "dial timeout", decoded["cause"])
}

func TestError_Redact(t *testing.T) {
	err := New(ErrCredentialsMissing, "no usable credentials").
		WithField("profile", "deploy").
		WithField("secret_access_key", "wJalrXUtnFEMI").
		WithField("session_token", "FwoGZXIvYXdzEBc")

	redacted := err.Redact()

	assert.Equal(t, err.Code, redacted.Code)
	assert.Equal(t, "deploy", redacted.Fields["profile"])
	assert.NotContains(t, redacted.Fields, "secret_access_key")
	assert.NotContains(t, redacted.Fields, "session_token")

	// The original keeps its fields
	assert.Contains(t, err.Fields, "secret_access_key")
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(ErrCredentialsMissing))
	assert.True(t, IsUserError(ErrUnsupportedIdentity))
	assert.True(t, IsUserError(ErrValidationFailed))
	assert.False(t, IsUserError(ErrInternal))
	assert.False(t, IsUserError(ErrUnknownServiceKind))
	assert.False(t, IsUserError(ErrSimulationFailed))
}
