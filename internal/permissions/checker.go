package permissions

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/permproof/permproof/internal/awsclient"
	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/internal/identity"
	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
	"github.com/permproof/permproof/pkg/metrics"
	"github.com/permproof/permproof/pkg/tracing"
)

// defaultRetries is the retry budget handed to the simulator per rule
const defaultRetries = 2

// IdentitySource fetches the caller's raw identity ARN. A nil ARN means the
// identity service returned no ARN for the caller.
type IdentitySource interface {
	CallerARN(ctx context.Context, region string) (*string, error)
}

// STSIdentity fetches the caller identity via an STS client from the shared
// cache
type STSIdentity struct {
	clients *awsclient.Cache
	custom  *credentials.Custom
}

// NewSTSIdentity creates an STS-backed identity source
func NewSTSIdentity(clients *awsclient.Cache, custom *credentials.Custom) *STSIdentity {
	return &STSIdentity{clients: clients, custom: custom}
}

// CallerARN returns the raw ARN of the caller's effective identity
func (s *STSIdentity) CallerARN(ctx context.Context, region string) (*string, error) {
	client, err := s.clients.STS(ctx, region, s.custom)
	if err != nil {
		return nil, err
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.Wrap(
			errors.ErrNoIdentity,
			err,
			"failed to fetch caller identity",
		)
	}

	return out.Arn, nil
}

// Checker validates that the caller's effective identity holds a required
// set of permissions by driving policy simulation per entry.
type Checker struct {
	identity  IdentitySource
	simulator RuleSimulator
	logger    logger.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	retries   int
}

// CheckerOption configures a Checker
type CheckerOption func(*Checker)

// WithIdentitySource replaces the STS-backed identity source
func WithIdentitySource(source IdentitySource) CheckerOption {
	return func(c *Checker) {
		c.identity = source
	}
}

// WithSimulator replaces the IAM-backed rule simulator
func WithSimulator(sim RuleSimulator) CheckerOption {
	return func(c *Checker) {
		c.simulator = sim
	}
}

// WithMetrics records simulation calls and decisions
func WithMetrics(m *metrics.Metrics) CheckerOption {
	return func(c *Checker) {
		c.metrics = m
	}
}

// WithTracer replaces the global tracer
func WithTracer(tracer trace.Tracer) CheckerOption {
	return func(c *Checker) {
		c.tracer = tracer
	}
}

// WithRetries overrides the per-rule retry budget
func WithRetries(retries int) CheckerOption {
	return func(c *Checker) {
		if retries >= 0 {
			c.retries = retries
		}
	}
}

// NewChecker creates a permission checker wired to the shared client cache
func NewChecker(clients *awsclient.Cache, custom *credentials.Custom, log logger.Logger, opts ...CheckerOption) *Checker {
	c := &Checker{
		identity:  NewSTSIdentity(clients, custom),
		simulator: NewIAMSimulator(clients, custom, log),
		logger:    log,
		tracer:    otel.Tracer("github.com/permproof/permproof/internal/permissions"),
		retries:   defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the caller identity, normalizes it to a simulatable
// principal and simulates every required permission in order. Results are
// aggregated in encounter order; onResult, when supplied, is invoked
// synchronously once per result before the next permission is simulated.
//
// Simulation is deliberately sequential to bound load on the simulation API
// and keep the callback stream deterministic. The first simulator failure
// aborts the run: no partial report is returned.
func (c *Checker) Check(ctx context.Context, region string, required []RequiredPermission, onResult func(Result)) ([]Result, error) {
	ctx, span := c.tracer.Start(ctx, "permissions.Check")
	defer span.End()

	rawARN, err := c.identity.CallerARN(ctx, region)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	if rawARN == nil || *rawARN == "" {
		err := errors.New(
			errors.ErrNoIdentity,
			"caller identity has no ARN",
		)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	principal, err := identity.NormalizePrincipal(*rawARN)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}

	c.logger.Info("Validating permissions",
		logger.String("principal", principal),
		logger.String("region", region),
		logger.Int("rules", len(required)),
	)

	results := make([]Result, 0, len(required))
	for _, perm := range required {
		simCtx, simSpan := c.tracer.Start(ctx, "permissions.SimulateRule")
		simSpan.SetAttributes(
			attribute.String("resource", perm.Resource),
			attribute.Int("actions", len(perm.Actions)),
		)

		start := time.Now()
		ruleResults, err := c.simulator.Simulate(simCtx, principal, perm.Actions, perm.Resource, region, c.retries)
		if err != nil {
			if c.metrics != nil {
				c.metrics.RecordSimulation("error", time.Since(start))
			}
			tracing.RecordError(simCtx, err)
			simSpan.End()
			return nil, err
		}
		if c.metrics != nil {
			c.metrics.RecordSimulation("ok", time.Since(start))
		}
		simSpan.End()

		for _, result := range ruleResults {
			results = append(results, result)
			if c.metrics != nil {
				c.metrics.RecordDecision(string(result.Decision))
			}
			if onResult != nil {
				onResult(result)
			}
		}
	}

	c.logger.Info("Permission validation finished",
		logger.String("principal", principal),
		logger.Int("results", len(results)),
	)

	return results, nil
}
