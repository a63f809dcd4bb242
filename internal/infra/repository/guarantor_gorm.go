package repository

import (
	"context"
	"errors"

	"lms/internal/domain/model"
	repo "lms/internal/repository"

	"gorm.io/gorm"
)

type guarantorGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewGuarantorRepository(db *gorm.DB) repo.GuarantorRepository {
	return &guarantorGormRepository{db: db}
}

func (r *guarantorGormRepository) Create(ctx context.Context, guarantor *model.Guarantor) error {
	if err := r.db.WithContext(ctx).Create(guarantor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateGuarantor
		}
		return err
	}
	return nil
}

func (r *guarantorGormRepository) FindByID(ctx context.Context, guarantorID string) (*model.Guarantor, error) {
	var g model.Guarantor

	err := r.db.WithContext(ctx).
		Preload("BusinessPhotos").
		Where("guarantor_id = ?", guarantorID).
		First(&g).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrGuarantorNotFound
		}
		return nil, err
	}

	return &g, nil
}

func (r *guarantorGormRepository) List(ctx context.Context) ([]model.Guarantor, error) {
	var guarantors []model.Guarantor

	if err := r.db.WithContext(ctx).
		Preload("BusinessPhotos").
		Order("created_at DESC").
		Find(&guarantors).Error; err != nil {
		return nil, err
	}

	return guarantors, nil
}

func (r *guarantorGormRepository) Update(ctx context.Context, guarantor *model.Guarantor) error {
	if err := r.db.WithContext(ctx).Save(guarantor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repo.ErrDuplicateGuarantor
		}
		return err
	}
	return nil
}

func (r *guarantorGormRepository) Delete(ctx context.Context, guarantorID string) error {
	result := r.db.WithContext(ctx).
		Where("guarantor_id = ?", guarantorID).
		Delete(&model.Guarantor{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrGuarantorNotFound
	}

	return nil
}

type photoGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewPhotoRepository(db *gorm.DB) repo.PhotoRepository {
	return &photoGormRepository{db: db}
}

func (r *photoGormRepository) Create(ctx context.Context, photo *model.GuarantorBusinessPhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return err
	}
	return nil
}

func (r *photoGormRepository) FindByID(ctx context.Context, imageID string) (*model.GuarantorBusinessPhoto, error) {
	var p model.GuarantorBusinessPhoto

	err := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		First(&p).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrPhotoNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *photoGormRepository) Delete(ctx context.Context, imageID string) error {
	result := r.db.WithContext(ctx).
		Where("image_id = ?", imageID).
		Delete(&model.GuarantorBusinessPhoto{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrPhotoNotFound
	}

	return nil
}
