package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"lms/internal/domain/model"
	"lms/internal/repository"
	"lms/internal/validator"

	"github.com/google/uuid"
)

// 1枚あたりの上限（5MiB）
const maxPhotoSize = 5 * 1024 * 1024

// 受け付ける画像タイプ
var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// POST/PUT /guarantor の入力DTO
type GuarantorInput struct {
	ClientID                  string `json:"client_id"`
	GuarantorName             string `json:"guarantor_name"`
	NationalIDNumber          string `json:"national_id_number"`
	GuarantorPhoneNumber      string `json:"guarantor_phone_number"`
	GuarantorBusinessName     string `json:"guarantor_business_name"`
	GuarantorBusinessLocation string `json:"guarantor_business_location"`
}

// アップロードされた写真1枚分
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type GuarantorUsecase struct {
	guarantorRepo repository.GuarantorRepository
	photoRepo     repository.PhotoRepository
	clientRepo    repository.ClientRepository
	uploadDir     string
}

// DI
func NewGuarantorUsecase(
	guarantorRepo repository.GuarantorRepository,
	photoRepo repository.PhotoRepository,
	clientRepo repository.ClientRepository,
	uploadDir string,
) *GuarantorUsecase {
	return &GuarantorUsecase{
		guarantorRepo: guarantorRepo,
		photoRepo:     photoRepo,
		clientRepo:    clientRepo,
		uploadDir:     uploadDir,
	}
}

func (u *GuarantorUsecase) validate(in *GuarantorInput) error {
	if strings.TrimSpace(in.GuarantorName) == "" || strings.TrimSpace(in.ClientID) == "" {
		return ErrValidation
	}

	if err := validator.ValidateNationalID(in.NationalIDNumber); err != nil {
		return ErrValidation
	}

	phone, err := validator.NormalizePhone(in.GuarantorPhoneNumber)
	if err != nil {
		return ErrValidation
	}
	in.GuarantorPhoneNumber = phone

	return nil
}

func (u *GuarantorUsecase) Create(ctx context.Context, in GuarantorInput) (*model.Guarantor, error) {
	if err := u.validate(&in); err != nil {
		return nil, err
	}

	//紐づけ先クライアントが実在するか
	if _, err := u.clientRepo.FindByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now().In(model.EAT)

	g := &model.Guarantor{
		GuarantorID:               uuid.NewString(),
		ClientID:                  in.ClientID,
		GuarantorName:             in.GuarantorName,
		NationalIDNumber:          in.NationalIDNumber,
		GuarantorPhoneNumber:      in.GuarantorPhoneNumber,
		GuarantorBusinessName:     in.GuarantorBusinessName,
		GuarantorBusinessLocation: in.GuarantorBusinessLocation,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := u.guarantorRepo.Create(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicateGuarantor) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return g, nil
}

func (u *GuarantorUsecase) List(ctx context.Context) ([]model.Guarantor, error) {
	return u.guarantorRepo.List(ctx)
}

func (u *GuarantorUsecase) Get(ctx context.Context, guarantorID string) (*model.Guarantor, error) {
	g, err := u.guarantorRepo.FindByID(ctx, guarantorID)
	if err != nil {
		if errors.Is(err, repository.ErrGuarantorNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (u *GuarantorUsecase) Update(ctx context.Context, guarantorID string, in GuarantorInput) (*model.Guarantor, error) {
	g, err := u.guarantorRepo.FindByID(ctx, guarantorID)
	if err != nil {
		if errors.Is(err, repository.ErrGuarantorNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := u.validate(&in); err != nil {
		return nil, err
	}

	g.ClientID = in.ClientID
	g.GuarantorName = in.GuarantorName
	g.NationalIDNumber = in.NationalIDNumber
	g.GuarantorPhoneNumber = in.GuarantorPhoneNumber
	g.GuarantorBusinessName = in.GuarantorBusinessName
	g.GuarantorBusinessLocation = in.GuarantorBusinessLocation
	g.UpdatedAt = time.Now().In(model.EAT)

	if err := u.guarantorRepo.Update(ctx, g); err != nil {
		if errors.Is(err, repository.ErrDuplicateGuarantor) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return g, nil
}

func (u *GuarantorUsecase) Delete(ctx context.Context, guarantorID string) error {
	if err := u.guarantorRepo.Delete(ctx, guarantorID); err != nil {
		if errors.Is(err, repository.ErrGuarantorNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// 事業所写真のアップロード。
// 全ファイルを検証してからディスクへ書き、行を作る。
func (u *GuarantorUsecase) UploadPhotos(ctx context.Context, guarantorID string, files []PhotoUpload) (*model.Guarantor, error) {
	if _, err := u.guarantorRepo.FindByID(ctx, guarantorID); err != nil {
		if errors.Is(err, repository.ErrGuarantorNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for _, f := range files {
		if _, ok := allowedPhotoTypes[f.ContentType]; !ok {
			return nil, ErrValidation
		}
		if len(f.Data) > maxPhotoSize {
			return nil, ErrValidation
		}
	}

	if err := os.MkdirAll(u.uploadDir, 0o755); err != nil {
		return nil, err
	}

	for _, f := range files {
		ext := filepath.Ext(f.Filename)
		filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		path := filepath.Join(u.uploadDir, filename)

		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return nil, err
		}

		photo := &model.GuarantorBusinessPhoto{
			ImageID:     uuid.NewString(),
			GuarantorID: guarantorID,
			Link:        path,
			CreatedAt:   time.Now().In(model.EAT),
			UpdatedAt:   time.Now().In(model.EAT),
		}

		if err := u.photoRepo.Create(ctx, photo); err != nil {
			return nil, err
		}
	}

	//写真込みで読み直して返す
	return u.Get(ctx, guarantorID)
}

// 写真の削除。行とファイルの両方を消す。
func (u *GuarantorUsecase) DeletePhoto(ctx context.Context, imageID string) error {
	photo, err := u.photoRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := u.photoRepo.Delete(ctx, imageID); err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return ErrNotFound
		}
		return err
	}

	//ファイルが無くても気にしない
	_ = os.Remove(photo.Link)

	return nil
}
