package repository

import (
	"context"
	"errors"

	"lms/internal/domain/model"
)

var ErrGuarantorNotFound = errors.New("guarantor not found")

var ErrDuplicateGuarantor = errors.New("duplicate guarantor")

var ErrPhotoNotFound = errors.New("photo not found")

// 保証人のCRUDを約束。Find/Listは写真も一緒に読む。
type GuarantorRepository interface {
	Create(ctx context.Context, guarantor *model.Guarantor) error
	FindByID(ctx context.Context, guarantorID string) (*model.Guarantor, error)
	List(ctx context.Context) ([]model.Guarantor, error)
	Update(ctx context.Context, guarantor *model.Guarantor) error
	Delete(ctx context.Context, guarantorID string) error
}

// 事業所写真の保存・削除
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.GuarantorBusinessPhoto) error
	FindByID(ctx context.Context, imageID string) (*model.GuarantorBusinessPhoto, error)
	Delete(ctx context.Context, imageID string) error
}
