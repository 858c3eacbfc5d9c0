package repository

import (
	"context"
	"errors"

	"github.com/gamecp/provisioner/internal/database"
	"github.com/gamecp/provisioner/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ServiceRepository defines read/write access to billing service records
type ServiceRepository interface {
	Get(ctx context.Context, serviceID string) (*models.Service, error)
	SetServerIdentifier(ctx context.Context, serviceID, serverID string) error
	SetUsername(ctx context.Context, serviceID, username string) error
	SetDedicatedIP(ctx context.Context, serviceID, address string) error
	SetCustomField(ctx context.Context, serviceID, fieldName, fieldValue string) error
}

// dynamoServiceRepository implements ServiceRepository using DynamoDB
type dynamoServiceRepository struct {
	db *database.ServiceOperations
}

// NewServiceRepository creates a new DynamoDB-backed service repository
func NewServiceRepository(db *database.ServiceOperations) ServiceRepository {
	return &dynamoServiceRepository{db: db}
}

func (r *dynamoServiceRepository) Get(ctx context.Context, serviceID string) (*models.Service, error) {
	service, err := r.db.GetService(ctx, serviceID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return service, err
}

func (r *dynamoServiceRepository) SetServerIdentifier(ctx context.Context, serviceID, serverID string) error {
	return r.db.SetServerIdentifier(ctx, serviceID, serverID)
}

func (r *dynamoServiceRepository) SetUsername(ctx context.Context, serviceID, username string) error {
	return r.db.SetUsername(ctx, serviceID, username)
}

func (r *dynamoServiceRepository) SetDedicatedIP(ctx context.Context, serviceID, address string) error {
	return r.db.SetDedicatedIP(ctx, serviceID, address)
}

func (r *dynamoServiceRepository) SetCustomField(ctx context.Context, serviceID, fieldName, fieldValue string) error {
	return r.db.SetCustomField(ctx, serviceID, fieldName, fieldValue)
}
