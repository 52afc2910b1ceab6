// Package bedrock builds AWS Bedrock runtime clients and resolves
// cross-region inference profiles for the models this project calls.
package bedrock

import (
	"context"
	"net/http"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// ClientOptions carries everything needed to reach the Bedrock runtime.
type ClientOptions struct {
	// Region is the AWS region the client talks to.
	Region string
	// AccessKey and SecretKey select static credentials. When either is
	// empty the SDK's default credential chain is used instead.
	AccessKey string
	SecretKey string
	// ReadTimeout bounds a single round trip. Grounded generations can
	// run for minutes, so callers pass generous values here.
	ReadTimeout time.Duration
}

// NewClient creates a Bedrock runtime client from the given options.
func NewClient(ctx context.Context, opts ClientOptions) (*bedrockruntime.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}

	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts,
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	if opts.ReadTimeout > 0 {
		loadOpts = append(loadOpts,
			config.WithHTTPClient(&http.Client{Timeout: opts.ReadTimeout}))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}

	return bedrockruntime.NewFromConfig(awsConfig), nil
}
