package repository

import (
	"context"
	"errors"

	"lms/internal/domain/model"
)

var ErrClientNotFound = errors.New("client not found")

// national_id / phone のunique制約違反
var ErrDuplicateClient = errors.New("duplicate client")

// クライアントのCRUDを約束
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, clientID string) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, clientID string) error
}
