package permissions

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/cenkalti/backoff/v4"

	"github.com/permproof/permproof/internal/awsclient"
	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/pkg/errors"
	"github.com/permproof/permproof/pkg/logger"
)

// retryInterval is the pause between simulation retries. SimulatePrincipalPolicy
// throttles aggressively, so a constant interval beats an exponential one here.
const retryInterval = 500 * time.Millisecond

// RuleSimulator evaluates one required-permission rule against a principal.
// Implementations own their retry policy; the retries argument is the budget
// handed down by the orchestrator.
type RuleSimulator interface {
	Simulate(ctx context.Context, principalARN string, actions []string, resource, region string, retries int) ([]Result, error)
}

// IAMSimulator drives iam:SimulatePrincipalPolicy through the shared client
// cache
type IAMSimulator struct {
	clients *awsclient.Cache
	custom  *credentials.Custom
	logger  logger.Logger
}

// NewIAMSimulator creates a simulator backed by the IAM policy simulator API
func NewIAMSimulator(clients *awsclient.Cache, custom *credentials.Custom, log logger.Logger) *IAMSimulator {
	return &IAMSimulator{
		clients: clients,
		custom:  custom,
		logger:  log,
	}
}

// Simulate evaluates the given actions against the resource for the
// principal, retrying transient failures up to the given budget. Results
// come back in the order the API returns them, one per action.
func (s *IAMSimulator) Simulate(ctx context.Context, principalARN string, actions []string, resource, region string, retries int) ([]Result, error) {
	client, err := s.clients.IAM(ctx, region, s.custom)
	if err != nil {
		return nil, err
	}

	operation := func() ([]Result, error) {
		return s.simulateOnce(ctx, client, principalARN, actions, resource)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), uint64(retries)),
		ctx,
	)

	results, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return nil, errors.Wrap(
			errors.ErrSimulationFailed,
			err,
			"policy simulation failed",
		).WithField("resource", resource)
	}

	return results, nil
}

// simulateOnce performs a single SimulatePrincipalPolicy call, following
// truncation markers until the full result set is collected
func (s *IAMSimulator) simulateOnce(ctx context.Context, client *iam.Client, principalARN string, actions []string, resource string) ([]Result, error) {
	input := &iam.SimulatePrincipalPolicyInput{
		PolicySourceArn: aws.String(principalARN),
		ActionNames:     actions,
		ResourceArns:    []string{resource},
	}

	var results []Result
	for {
		resp, err := client.SimulatePrincipalPolicy(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, eval := range resp.EvaluationResults {
			results = append(results, Result{
				Name:     aws.ToString(eval.EvalActionName),
				Decision: Decision(eval.EvalDecision),
			})
		}

		if !resp.IsTruncated {
			break
		}
		input.Marker = resp.Marker
	}

	s.logger.Debug("Simulated permission rule",
		logger.String("principal", principalARN),
		logger.String("resource", resource),
		logger.Int("actions", len(actions)),
		logger.Int("results", len(results)),
	)

	return results, nil
}
