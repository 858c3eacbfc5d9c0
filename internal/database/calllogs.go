package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gamecp/provisioner/internal/models"
)

// CallLogOperations handles DynamoDB operations on the module call log
type CallLogOperations struct {
	client    *Client
	tableName string
}

// NewCallLogOperations creates a new CallLogOperations instance
func NewCallLogOperations(client *Client, tableName string) *CallLogOperations {
	return &CallLogOperations{
		client:    client,
		tableName: tableName,
	}
}

// PutEntry writes one call log entry
func (co *CallLogOperations) PutEntry(ctx context.Context, entry *models.CallLogEntry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal call log entry: %w", err)
	}

	if _, err := co.client.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(co.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to write call log entry: %w", err)
	}

	return nil
}
