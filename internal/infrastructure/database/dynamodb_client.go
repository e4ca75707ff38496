package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"laundry_desk/internal/infrastructure/config"
)

// LoadAWSConfig builds the shared SDK configuration for DynamoDB and S3.
// Throttling, 5xx and connection errors are retried with exponential backoff,
// bounded by cfg.Retry.
func LoadAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWS.Region),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRetryer(newRetryer(cfg.Retry)),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to create aws config: %w", err)
	}
	return awsCfg, nil
}

func newRetryer(rc config.RetryConfig) func() aws.Retryer {
	return func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = rc.MaxAttempts
			o.MaxBackoff = rc.MaxBackoff
		})
	}
}

// ConnectDynamoDB creates a DynamoDB client. DYNAMODB_ENDPOINT points it at a
// local instance (e.g. http://dynamodb:8000).
func ConnectDynamoDB(awsCfg aws.Config, cfg *config.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDB.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
		}
	})
}
