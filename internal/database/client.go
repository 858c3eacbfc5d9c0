package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gamecp/provisioner/internal/logger"
)

// Client wraps the DynamoDB client shared by all billing-store operations
type Client struct {
	DynamoDB *dynamodb.Client
}

// NewClient creates a new DynamoDB client for the given region
func NewClient(ctx context.Context, region string) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	return &Client{
		DynamoDB: dynamodb.NewFromConfig(awsCfg),
	}, nil
}

// VerifyTable checks that a billing-store table exists and is reachable.
// A missing table is reported, not fatal: the bridge can still serve hooks
// that do not touch it.
func (c *Client) VerifyTable(ctx context.Context, tableName string) {
	_, err := c.DynamoDB.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"table": tableName,
			"error": err.Error(),
		}).Warn("Could not verify billing-store table")
		return
	}
	logger.WithField("table", tableName).Debug("Billing-store table verified")
}
