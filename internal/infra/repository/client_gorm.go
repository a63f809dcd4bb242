package repository

import (
	"context"
	"errors"

	"lms/internal/domain/model"
	repo "lms/internal/repository"

	"gorm.io/gorm"
)

type clientGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewClientRepository(db *gorm.DB) repo.ClientRepository {
	return &clientGormRepository{db: db}
}

func (r *clientGormRepository) Create(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateClient
		}
		return err
	}
	return nil
}

// 保証人は名前だけの一覧で十分なのでPreloadで軽く読む
func (r *clientGormRepository) FindByID(ctx context.Context, clientID string) (*model.Client, error) {
	var c model.Client

	err := r.db.WithContext(ctx).
		Preload("Guarantors").
		Where("client_id = ?", clientID).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrClientNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *clientGormRepository) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client

	if err := r.db.WithContext(ctx).
		Preload("Guarantors").
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *clientGormRepository) Update(ctx context.Context, client *model.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateClient
		}
		return err
	}
	return nil
}

func (r *clientGormRepository) Delete(ctx context.Context, clientID string) error {
	result := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Delete(&model.Client{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrClientNotFound
	}

	return nil
}
