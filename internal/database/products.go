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

// ProductOperations handles DynamoDB operations on billing product records
type ProductOperations struct {
	client    *Client
	tableName string
}

// NewProductOperations creates a new ProductOperations instance
func NewProductOperations(client *Client, tableName string) *ProductOperations {
	return &ProductOperations{
		client:    client,
		tableName: tableName,
	}
}

// GetProduct retrieves a product record by its id
func (po *ProductOperations) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	result, err := po.client.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(po.tableName),
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var product models.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %s: %w", productID, err)
	}

	return &product, nil
}
