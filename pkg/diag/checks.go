package diag

import (
	"context"
	"fmt"
)

// CredentialsResolvable creates a check that verifies AWS credentials can be
// resolved. The probe is supplied by the credentials package so this package
// stays free of AWS imports.
func CredentialsResolvable(probe func(ctx context.Context) error) Check {
	return func(ctx context.Context) error {
		if err := probe(ctx); err != nil {
			return fmt.Errorf("credentials not resolvable: %w", err)
		}
		return nil
	}
}

// AlwaysHealthy is a check that always returns healthy
func AlwaysHealthy() Check {
	return func(ctx context.Context) error {
		return nil
	}
}

// AlwaysUnhealthy is a check that always returns unhealthy
// Useful for testing
func AlwaysUnhealthy(reason string) Check {
	return func(ctx context.Context) error {
		return fmt.Errorf("%s", reason)
	}
}

// CombinedCheck combines multiple checks with AND logic
func CombinedCheck(checks ...Check) Check {
	return func(ctx context.Context) error {
		for i, check := range checks {
			if err := check(ctx); err != nil {
				return fmt.Errorf("check %d failed: %w", i, err)
			}
		}
		return nil
	}
}
