package awsclient

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
)

// fakeHandle is a distinct pointer per construction so reference equality
// proves memoization
type fakeHandle struct {
	kind   ServiceKind
	region string
}

// stubChecker satisfies credentialChecker without touching the environment.
// Local rather than shared: internal/testutil imports internal/permissions,
// which imports this package.
type stubChecker struct {
	Err   error
	Calls int
}

func (s *stubChecker) Check(ctx context.Context) error {
	s.Calls++
	return s.Err
}

func newTestCache(t *testing.T, constructions *int) *Cache {
	t.Helper()
	return New(logger.Nop(),
		WithResolver(func() credentials.Source {
			return credentials.Source{
				Kind:            credentials.SourceExplicitKeyPair,
				AccessKeyID:     "AKIA",
				SecretAccessKey: "secret",
			}
		}),
		WithChecker(&stubChecker{}),
		WithConstructor(func(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error) {
			*constructions++
			return &fakeHandle{kind: kind, region: cfg.Region}, nil
		}),
	)
}

func TestCache_Get_Idempotent(t *testing.T) {
	constructions := 0
	cache := newTestCache(t, &constructions)
	ctx := context.Background()

	first, err := cache.Get(ctx, "us-east-1", KindS3, nil)
	require.NoError(t, err)

	second, err := cache.Get(ctx, "us-east-1", KindS3, nil)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, constructions)
}

func TestCache_Get_DistinctConfigurations(t *testing.T) {
	constructions := 0
	cache := newTestCache(t, &constructions)
	ctx := context.Background()

	base, err := cache.Get(ctx, "us-east-1", KindS3, nil)
	require.NoError(t, err)

	otherRegion, err := cache.Get(ctx, "eu-west-1", KindS3, nil)
	require.NoError(t, err)
	assert.NotSame(t, base, otherRegion)

	otherKind, err := cache.Get(ctx, "us-east-1", KindLambda, nil)
	require.NoError(t, err)
	assert.NotSame(t, base, otherKind)

	custom := &credentials.Custom{Endpoint: "http://localhost:4566"}
	otherEndpoint, err := cache.Get(ctx, "us-east-1", KindS3, custom)
	require.NoError(t, err)
	assert.NotSame(t, base, otherEndpoint)

	assert.Equal(t, 4, constructions)
}

func TestCache_Get_UnknownKind(t *testing.T) {
	constructions := 0
	cache := newTestCache(t, &constructions)

	_, err := cache.Get(context.Background(), "us-east-1", ServiceKind("dynamodb"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownServiceKind))
	assert.Zero(t, constructions)
}

func TestCache_Get_CredentialCheckFailure(t *testing.T) {
	checkErr := errors.New(errors.ErrCredentialsMissing, "no AWS credentials found")
	checker := &stubChecker{Err: checkErr}
	constructions := 0

	cache := New(logger.Nop(),
		WithResolver(func() credentials.Source { return credentials.Source{Kind: credentials.SourceNone} }),
		WithChecker(checker),
		WithConstructor(func(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error) {
			constructions++
			return &fakeHandle{}, nil
		}),
	)

	_, err := cache.Get(context.Background(), "us-east-1", KindS3, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCredentialsMissing))
	assert.Zero(t, constructions, "construction must not run without credentials")
}

func TestCache_Get_FailureNotMemoized(t *testing.T) {
	attempts := 0
	cache := New(logger.Nop(),
		WithResolver(func() credentials.Source {
			return credentials.Source{Kind: credentials.SourceExplicitKeyPair, AccessKeyID: "AKIA", SecretAccessKey: "secret"}
		}),
		WithChecker(&stubChecker{}),
		WithConstructor(func(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New(errors.ErrClientConstruction, "transient construction failure")
			}
			return &fakeHandle{kind: kind}, nil
		}),
	)
	ctx := context.Background()

	_, err := cache.Get(ctx, "us-east-1", KindIAM, nil)
	require.Error(t, err)

	// Next call retries construction from scratch
	handle, err := cache.Get(ctx, "us-east-1", KindIAM, nil)
	require.NoError(t, err)
	assert.NotNil(t, handle)
	assert.Equal(t, 2, attempts)
}

func TestCache_Get_ChecksOncePerMiss(t *testing.T) {
	checker := &stubChecker{}
	constructions := 0
	cache := New(logger.Nop(),
		WithResolver(func() credentials.Source {
			return credentials.Source{Kind: credentials.SourceExplicitKeyPair, AccessKeyID: "AKIA", SecretAccessKey: "secret"}
		}),
		WithChecker(checker),
		WithConstructor(func(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error) {
			constructions++
			return &fakeHandle{}, nil
		}),
	)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cache.Get(ctx, "us-east-1", KindSTS, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, constructions)
	assert.Equal(t, 1, checker.Calls, "hits must not re-check credentials")
}

func TestServiceKind_IsValid(t *testing.T) {
	for _, kind := range []ServiceKind{KindS3, KindLogs, KindIAM, KindSTS, KindLambda, KindQuotas} {
		assert.True(t, kind.IsValid(), kind.String())
	}
	assert.False(t, ServiceKind("").IsValid())
	assert.False(t, ServiceKind("ec2").IsValid())
}
