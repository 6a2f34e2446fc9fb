package credentials

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
)

// Checker verifies that usable credentials exist before a service client is
// constructed. Invoked once per cache miss.
type Checker struct {
	logger logger.Logger

	// resolve is swappable for tests
	resolve func() Source
}

// NewChecker creates a credential checker
func NewChecker(log logger.Logger) *Checker {
	return &Checker{
		logger:  log,
		resolve: Resolve,
	}
}

// Check fails with a user-facing configuration error when no credentials are
// resolvable. An explicit source (profile, key pair, managed runner) is
// trusted as-is; only the fall-through case probes the SDK default chain.
func (c *Checker) Check(ctx context.Context) error {
	source := c.resolve()

	c.logger.Debug("Checking credentials",
		logger.String("source", string(source.Kind)),
	)

	if source.Kind != SourceNone {
		return nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return errors.Wrap(
			errors.ErrCredentialsMissing,
			err,
			"unable to load AWS configuration",
		)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return errors.Wrap(
			errors.ErrCredentialsMissing,
			err,
			"no AWS credentials found",
		).WithDetail("set " + EnvProfile + ", " + EnvAccessKeyID + "/" + EnvSecretAccessKey + ", or configure a default profile")
	}

	return nil
}
