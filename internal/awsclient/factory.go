package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/servicequotas"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/permproof/permproof/internal/credentials"
	"github.com/permproof/permproof/pkg/errors"
)

// customEndpointRegion pins requests against a custom endpoint to a fixed
// pseudo-region. Custom endpoints are region-agnostic, and a fixed value
// keeps the fingerprint stable regardless of the requested region.
const customEndpointRegion = "us-east-1"

// constructorFunc builds a service client handle from a loaded AWS config
type constructorFunc func(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error)

// loadConfig assembles the aws.Config for a cache miss: either the custom
// endpoint override, or the resolved credential source for the requested
// region.
func loadConfig(ctx context.Context, source credentials.Source, region string, custom *credentials.Custom) (aws.Config, error) {
	if custom != nil {
		opts := []func(*config.LoadOptions) error{
			config.WithRegion(customEndpointRegion),
		}
		if custom.AccessKeyID != "" {
			opts = append(opts, config.WithCredentialsProvider(
				awscreds.NewStaticCredentialsProvider(custom.AccessKeyID, custom.SecretAccessKey, ""),
			))
		}

		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return aws.Config{}, err
		}
		cfg.BaseEndpoint = aws.String(custom.Endpoint)
		return cfg, nil
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	switch source.Kind {
	case credentials.SourceNamedProfile:
		opts = append(opts, config.WithSharedConfigProfile(source.Profile))
	case credentials.SourceExplicitKeyPair:
		opts = append(opts, config.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(source.AccessKeyID, source.SecretAccessKey, ""),
		))
	case credentials.SourceAmbient, credentials.SourceNone:
		// Platform-managed or SDK default chain
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

// construct dispatches on the closed ServiceKind set. The default branch is
// unreachable for callers that went through Cache.Get, which validates the
// kind first.
func construct(ctx context.Context, kind ServiceKind, cfg aws.Config) (interface{}, error) {
	switch kind {
	case KindS3:
		return s3.NewFromConfig(cfg), nil
	case KindLogs:
		return cloudwatchlogs.NewFromConfig(cfg), nil
	case KindIAM:
		return iam.NewFromConfig(cfg), nil
	case KindSTS:
		return sts.NewFromConfig(cfg), nil
	case KindLambda:
		return lambda.NewFromConfig(cfg), nil
	case KindQuotas:
		return servicequotas.NewFromConfig(cfg), nil
	default:
		return nil, errors.New(
			errors.ErrUnknownServiceKind,
			fmt.Sprintf("no constructor for service kind %q", kind),
		)
	}
}
