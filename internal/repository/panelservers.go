package repository

import (
	"context"
	"errors"

	"github.com/gamecp/provisioner/internal/database"
	"github.com/gamecp/provisioner/internal/models"
)

// PanelServerRepository defines read access to panel server records
type PanelServerRepository interface {
	Get(ctx context.Context, serverRecordID string) (*models.PanelServerRecord, error)
	FindByGroupAndType(ctx context.Context, groupID, serverType string) (*models.PanelServerRecord, error)
}

// ProductRepository defines read access to billing product records
type ProductRepository interface {
	Get(ctx context.Context, productID string) (*models.Product, error)
}

// dynamoPanelServerRepository implements PanelServerRepository using DynamoDB
type dynamoPanelServerRepository struct {
	db *database.PanelServerOperations
}

// NewPanelServerRepository creates a new DynamoDB-backed panel server repository
func NewPanelServerRepository(db *database.PanelServerOperations) PanelServerRepository {
	return &dynamoPanelServerRepository{db: db}
}

func (r *dynamoPanelServerRepository) Get(ctx context.Context, serverRecordID string) (*models.PanelServerRecord, error) {
	record, err := r.db.GetServer(ctx, serverRecordID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return record, err
}

func (r *dynamoPanelServerRepository) FindByGroupAndType(ctx context.Context, groupID, serverType string) (*models.PanelServerRecord, error) {
	record, err := r.db.FindByGroupAndType(ctx, groupID, serverType)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return record, err
}

// dynamoProductRepository implements ProductRepository using DynamoDB
type dynamoProductRepository struct {
	db *database.ProductOperations
}

// NewProductRepository creates a new DynamoDB-backed product repository
func NewProductRepository(db *database.ProductOperations) ProductRepository {
	return &dynamoProductRepository{db: db}
}

func (r *dynamoProductRepository) Get(ctx context.Context, productID string) (*models.Product, error) {
	product, err := r.db.GetProduct(ctx, productID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return product, err
}
