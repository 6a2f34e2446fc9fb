// Package testutil provides in-memory stand-ins for the external
// collaborators used in tests.
package testutil

import (
	"context"

	"github.com/permproof/permproof/internal/permissions"
)

// StubIdentity returns a fixed caller ARN (or error) from CallerARN
type StubIdentity struct {
	ARN   *string
	Err   error
	Calls int
}

// CallerARN implements permissions.IdentitySource
func (s *StubIdentity) CallerARN(ctx context.Context, region string) (*string, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.ARN, nil
}

// SimulateCall records the arguments of one Simulate invocation
type SimulateCall struct {
	Principal string
	Actions   []string
	Resource  string
	Region    string
	Retries   int
}

// StubSimulator replays canned results per resource and records every call
type StubSimulator struct {
	// Results maps resource -> canned results
	Results map[string][]permissions.Result

	// Errs maps resource -> error to return instead of results
	Errs map[string]error

	Calls []SimulateCall
}

// Simulate implements permissions.RuleSimulator
func (s *StubSimulator) Simulate(ctx context.Context, principalARN string, actions []string, resource, region string, retries int) ([]permissions.Result, error) {
	s.Calls = append(s.Calls, SimulateCall{
		Principal: principalARN,
		Actions:   actions,
		Resource:  resource,
		Region:    region,
		Retries:   retries,
	})

	if err, ok := s.Errs[resource]; ok {
		return nil, err
	}
	return s.Results[resource], nil
}

// Ptr returns a pointer to v, for literal test fixtures
func Ptr[T any](v T) *T {
	return &v
}
