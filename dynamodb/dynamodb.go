package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Options configures the trending counter store. Endpoint overrides the AWS
// endpoint, e.g. for DynamoDB Local.
type Options struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SessionToken  string
	TrendingTable string
	TrendingIndex string
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Region) == "" {
		return errors.New("dynamodb: region is required")
	}
	if o.AccessKey != "" || o.SecretKey != "" || o.SessionToken != "" {
		if o.AccessKey == "" || o.SecretKey == "" {
			return errors.New("dynamodb: access key and secret key must be set together")
		}
	}
	if err := validateTable(o.TrendingTable); err != nil {
		return err
	}
	return validateIndex(o.TrendingIndex)
}

func (o Options) loadOptions() []func(*awscfg.LoadOptions) error {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(strings.TrimSpace(o.Region)),
		// counter updates are fire-and-forget; a failed write is logged, not retried
		awscfg.WithRetryMaxAttempts(1),
	}
	if o.AccessKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, o.SessionToken),
		))
	}
	return loadOpts
}

// NewClient builds a DynamoDB client from opts. Credentials fall back to the
// default AWS chain when no static keys are given.
func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

// OpenTrending connects and returns a repository over the configured table.
func OpenTrending(ctx context.Context, opts Options) (*TrendingRepository, error) {
	client, err := NewClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewTrendingRepository(client, opts.TrendingTable, opts.TrendingIndex), nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}

func validateIndex(index string) error {
	if strings.TrimSpace(index) == "" {
		return errors.New("dynamodb: index name is required")
	}
	return nil
}
