package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gamecp/provisioner/internal/models"
)

// PanelServerOperations handles DynamoDB operations on panel server records
type PanelServerOperations struct {
	client    *Client
	tableName string
}

// NewPanelServerOperations creates a new PanelServerOperations instance
func NewPanelServerOperations(client *Client, tableName string) *PanelServerOperations {
	return &PanelServerOperations{
		client:    client,
		tableName: tableName,
	}
}

// GetServer retrieves a panel server record by its id
func (po *PanelServerOperations) GetServer(ctx context.Context, serverRecordID string) (*models.PanelServerRecord, error) {
	result, err := po.client.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(po.tableName),
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: serverRecordID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get panel server %s: %w", serverRecordID, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var record models.PanelServerRecord
	if err := attributevalue.UnmarshalMap(result.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal panel server %s: %w", serverRecordID, err)
	}

	return &record, nil
}

// FindByGroupAndType returns the first panel server record in a server
// group whose module type matches. Mirrors the billing system's server
// group assignment: any member of the group can serve the product.
func (po *PanelServerOperations) FindByGroupAndType(ctx context.Context, groupID, serverType string) (*models.PanelServerRecord, error) {
	result, err := po.client.DynamoDB.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(po.tableName),
		FilterExpression: aws.String("GroupId = :groupId AND #type = :type"),
		ExpressionAttributeNames: map[string]string{
			"#type": "Type",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":groupId": &types.AttributeValueMemberS{Value: groupID},
			":type":    &types.AttributeValueMemberS{Value: serverType},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan panel servers for group %s: %w", groupID, err)
	}
	if len(result.Items) == 0 {
		return nil, ErrNotFound
	}

	var record models.PanelServerRecord
	if err := attributevalue.UnmarshalMap(result.Items[0], &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal panel server: %w", err)
	}

	return &record, nil
}
