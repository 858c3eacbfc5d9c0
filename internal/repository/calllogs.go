package repository

import (
	"context"

	"github.com/gamecp/provisioner/internal/database"
	"github.com/gamecp/provisioner/internal/models"
)

// CallLogRepository defines write access to the module call log
type CallLogRepository interface {
	Put(ctx context.Context, entry *models.CallLogEntry) error
}

// dynamoCallLogRepository implements CallLogRepository using DynamoDB
type dynamoCallLogRepository struct {
	db *database.CallLogOperations
}

// NewCallLogRepository creates a new DynamoDB-backed call log repository
func NewCallLogRepository(db *database.CallLogOperations) CallLogRepository {
	return &dynamoCallLogRepository{db: db}
}

func (r *dynamoCallLogRepository) Put(ctx context.Context, entry *models.CallLogEntry) error {
	return r.db.PutEntry(ctx, entry)
}
