package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ServiceOperations handles all DynamoDB operations on billing service records
type ServiceOperations struct {
	client    *Client
	tableName string
}

// NewServiceOperations creates a new ServiceOperations instance
func NewServiceOperations(client *Client, tableName string) *ServiceOperations {
	return &ServiceOperations{
		client:    client,
		tableName: tableName,
	}
}

// GetService retrieves a service record by its id
func (so *ServiceOperations) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	result, err := so.client.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(so.tableName),
		Key: map[string]types.AttributeValue{
			"ServiceId": &types.AttributeValueMemberS{Value: serviceID},
		},
	})
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"service_id": serviceID,
			"error":      err.Error(),
		}).Error("Failed to get service record")
		return nil, fmt.Errorf("failed to get service %s: %w", serviceID, err)
	}

	if result.Item == nil {
		return nil, ErrNotFound
	}

	var service models.Service
	if err := attributevalue.UnmarshalMap(result.Item, &service); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service %s: %w", serviceID, err)
	}

	return &service, nil
}

// SetServerIdentifier persists the panel server identifier onto a service
// record after provisioning. The dedicated-IP and domain fields are cleared;
// the real ip:port is synced later from a live status fetch.
func (so *ServiceOperations) SetServerIdentifier(ctx context.Context, serviceID, serverID string) error {
	return so.update(ctx, serviceID, map[string]types.AttributeValue{
		":identifier": &types.AttributeValueMemberS{Value: serverID},
		":empty":      &types.AttributeValueMemberS{Value: ""},
		":now":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
	}, "SET AssignedIdentifier = :identifier, DedicatedIp = :empty, #domain = :empty, UpdatedAt = :now",
		map[string]string{"#domain": "Domain"})
}

// SetUsername updates the service record's username
func (so *ServiceOperations) SetUsername(ctx context.Context, serviceID, username string) error {
	return so.update(ctx, serviceID, map[string]types.AttributeValue{
		":username": &types.AttributeValueMemberS{Value: username},
		":now":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
	}, "SET Username = :username, UpdatedAt = :now", nil)
}

// SetDedicatedIP syncs the resolved connection address into the service record
func (so *ServiceOperations) SetDedicatedIP(ctx context.Context, serviceID, address string) error {
	return so.update(ctx, serviceID, map[string]types.AttributeValue{
		":address": &types.AttributeValueMemberS{Value: address},
		":now":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
	}, "SET DedicatedIp = :address, UpdatedAt = :now", nil)
}

// SetCustomField writes a named custom attribute onto a service record
func (so *ServiceOperations) SetCustomField(ctx context.Context, serviceID, fieldName, fieldValue string) error {
	return so.update(ctx, serviceID, map[string]types.AttributeValue{
		":value": &types.AttributeValueMemberS{Value: fieldValue},
		":now":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())},
	}, "SET CustomFields.#field = :value, UpdatedAt = :now",
		map[string]string{"#field": fieldName})
}

// update runs a single UpdateItem against a service record
func (so *ServiceOperations) update(ctx context.Context, serviceID string, values map[string]types.AttributeValue, expression string, names map[string]string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(so.tableName),
		Key: map[string]types.AttributeValue{
			"ServiceId": &types.AttributeValueMemberS{Value: serviceID},
		},
		UpdateExpression:          aws.String(expression),
		ExpressionAttributeValues: values,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	if _, err := so.client.DynamoDB.UpdateItem(ctx, input); err != nil {
		logger.WithFields(map[string]interface{}{
			"service_id": serviceID,
			"error":      err.Error(),
		}).Error("Failed to update service record")
		return fmt.Errorf("failed to update service %s: %w", serviceID, err)
	}

	return nil
}
