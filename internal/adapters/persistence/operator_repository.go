package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormOperatorRepository stores the operator credential using GORM.
type GormOperatorRepository struct {
	db *gorm.DB
}

func NewGormOperatorRepository(db *gorm.DB) *GormOperatorRepository {
	return &GormOperatorRepository{db: db}
}

// SaveCredential upserts the credential for an operator. Called by the
// provisioning flow after a fresh account claim.
func (r *GormOperatorRepository) SaveCredential(ctx context.Context, username, token string) error {
	model := &OperatorModel{Username: username, Token: token}
	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save credential: %w", result.Error)
	}
	return nil
}

// FindCredential returns the stored token for an operator, or empty string
// if none has been claimed yet.
func (r *GormOperatorRepository) FindCredential(ctx context.Context, username string) (string, error) {
	var model OperatorModel
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to find credential: %w", result.Error)
	}
	return model.Token, nil
}
