package awsclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
	"github.com/permproof/permproof/pkg/metrics"
)

// credentialChecker verifies credentials before client construction
type credentialChecker interface {
	Check(ctx context.Context) error
}

// Cache is a process-wide mapping from configuration fingerprint to a
// constructed service client handle. Entries are created on first miss and
// live for the process lifetime: no eviction, no TTL, no credential
// rotation. A longer-lived host must restart the process to rotate.
//
// The cache is an explicit object rather than package state so tests get
// isolation and callers decide the sharing scope.
type Cache struct {
	mu      sync.Mutex
	entries map[string]interface{}

	resolve   func() credentials.Source
	checker   credentialChecker
	construct constructorFunc

	logger  logger.Logger
	metrics *metrics.Metrics
}

// Option configures a Cache
type Option func(*Cache)

// WithMetrics records cache hits and misses
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithResolver replaces the credential resolver (tests)
func WithResolver(resolve func() credentials.Source) Option {
	return func(c *Cache) {
		c.resolve = resolve
	}
}

// WithChecker replaces the credential checker (tests)
func WithChecker(checker credentialChecker) Option {
	return func(c *Cache) {
		c.checker = checker
	}
}

// WithConstructor replaces the client constructor (tests)
func WithConstructor(fn constructorFunc) Option {
	return func(c *Cache) {
		c.construct = fn
	}
}

// New creates an empty client cache
func New(log logger.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]interface{}),
		resolve:   credentials.Resolve,
		checker:   credentials.NewChecker(log),
		construct: construct,
		logger:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached client handle for (region, kind, custom),
// constructing and memoizing it on first use. Repeated calls with equal
// arguments return the identical handle instance. A failed construction is
// not memoized; the next call retries from scratch.
func (c *Cache) Get(ctx context.Context, region string, kind ServiceKind, custom *credentials.Custom) (interface{}, error) {
	if !kind.IsValid() {
		return nil, errors.New(
			errors.ErrUnknownServiceKind,
			fmt.Sprintf("unknown service kind %q", kind),
		)
	}

	source := c.resolve()
	key := Fingerprint(source, region, kind, custom)

	// The mutex is held across construction so concurrent misses on the
	// same key build exactly one client.
	c.mu.Lock()
	defer c.mu.Unlock()

	if handle, ok := c.entries[key]; ok {
		if c.metrics != nil {
			c.metrics.RecordCacheHit(kind.String())
		}
		return handle, nil
	}

	if c.metrics != nil {
		c.metrics.RecordCacheMiss(kind.String())
	}

	if err := c.checker.Check(ctx); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(ctx, source, region, custom)
	if err != nil {
		return nil, errors.Wrap(
			errors.ErrClientConstruction,
			err,
			"failed to load AWS configuration",
		).WithField("service", kind.String())
	}

	handle, err := c.construct(ctx, kind, cfg)
	if err != nil {
		return nil, err
	}

	c.entries[key] = handle

	c.logger.Debug("Constructed service client",
		logger.String("service", kind.String()),
		logger.String("region", region),
		logger.Bool("custom_endpoint", custom != nil),
		logger.String("source", string(source.Kind)),
	)

	return handle, nil
}

// STS returns a cached STS client
func (c *Cache) STS(ctx context.Context, region string, custom *credentials.Custom) (*sts.Client, error) {
	handle, err := c.Get(ctx, region, KindSTS, custom)
	if err != nil {
		return nil, err
	}
	client, ok := handle.(*sts.Client)
	if !ok {
		return nil, errors.New(
			errors.ErrInternal,
			fmt.Sprintf("cached handle for %q has unexpected type %T", KindSTS, handle),
		)
	}
	return client, nil
}

// IAM returns a cached IAM client
func (c *Cache) IAM(ctx context.Context, region string, custom *credentials.Custom) (*iam.Client, error) {
	handle, err := c.Get(ctx, region, KindIAM, custom)
	if err != nil {
		return nil, err
	}
	client, ok := handle.(*iam.Client)
	if !ok {
		return nil, errors.New(
			errors.ErrInternal,
			fmt.Sprintf("cached handle for %q has unexpected type %T", KindIAM, handle),
		)
	}
	return client, nil
}
