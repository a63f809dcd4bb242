package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"lms/internal/domain/model"
	"lms/internal/repository"
	"lms/internal/validator"

	"github.com/google/uuid"
)

// POST/PUT /clients の入力DTO
type ClientInput struct {
	ClientName         string `json:"client_name"`
	NationalIDNumber   string `json:"national_id_number"`
	ClientPhoneNumber  string `json:"client_phone_number"`
	ClientBusinessName string `json:"client_business_name"`
	ClientResidence    string `json:"client_residence"`
	DateOfBirth        string `json:"date_of_birth"` // YYYY-MM-DD
	NextOfKinName      string `json:"next_of_kin_name"`
	NextOfKinContact   string `json:"next_of_kin_contact"`
	MaritalStatus      string `json:"marital_status"`
	NumberOfChildren   int    `json:"number_of_children"`
}

type ClientUsecase struct {
	clientRepo repository.ClientRepository
}

// DI
func NewClientUsecase(clientRepo repository.ClientRepository) *ClientUsecase {
	return &ClientUsecase{clientRepo: clientRepo}
}

// 入力を正規化してチェックする。電話番号はローカル形式へ揃える。
func (u *ClientUsecase) validate(in *ClientInput) (dob time.Time, err error) {
	if strings.TrimSpace(in.ClientName) == "" {
		return dob, ErrValidation
	}

	if err := validator.ValidateNationalID(in.NationalIDNumber); err != nil {
		return dob, ErrValidation
	}

	phone, err := validator.NormalizePhone(in.ClientPhoneNumber)
	if err != nil {
		return dob, ErrValidation
	}
	in.ClientPhoneNumber = phone

	kin, err := validator.NormalizePhone(in.NextOfKinContact)
	if err != nil {
		return dob, ErrValidation
	}
	in.NextOfKinContact = kin

	//近親者の連絡先が本人と同じはダメ（422）
	if in.NextOfKinContact == in.ClientPhoneNumber {
		return dob, ErrUnprocessable
	}

	switch model.MaritalStatus(in.MaritalStatus) {
	case model.MaritalMarried, model.MaritalSingle, model.MaritalWidowed:
	default:
		return dob, ErrValidation
	}

	dob, err = time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return dob, ErrValidation
	}

	return dob, nil
}

func (u *ClientUsecase) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	dob, err := u.validate(&in)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(model.EAT)

	client := &model.Client{
		ClientID:           uuid.NewString(),
		ClientName:         in.ClientName,
		NationalIDNumber:   in.NationalIDNumber,
		ClientPhoneNumber:  in.ClientPhoneNumber,
		ClientBusinessName: in.ClientBusinessName,
		ClientResidence:    in.ClientResidence,
		DateOfBirth:        dob,
		NextOfKinName:      in.NextOfKinName,
		NextOfKinContact:   in.NextOfKinContact,
		MaritalStatus:      model.MaritalStatus(in.MaritalStatus),
		NumberOfChildren:   in.NumberOfChildren,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := u.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateClient) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return client, nil
}

func (u *ClientUsecase) List(ctx context.Context) ([]model.Client, error) {
	return u.clientRepo.List(ctx)
}

func (u *ClientUsecase) Get(ctx context.Context, clientID string) (*model.Client, error) {
	client, err := u.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (u *ClientUsecase) Update(ctx context.Context, clientID string, in ClientInput) (*model.Client, error) {
	client, err := u.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	dob, err := u.validate(&in)
	if err != nil {
		return nil, err
	}

	client.ClientName = in.ClientName
	client.NationalIDNumber = in.NationalIDNumber
	client.ClientPhoneNumber = in.ClientPhoneNumber
	client.ClientBusinessName = in.ClientBusinessName
	client.ClientResidence = in.ClientResidence
	client.DateOfBirth = dob
	client.NextOfKinName = in.NextOfKinName
	client.NextOfKinContact = in.NextOfKinContact
	client.MaritalStatus = model.MaritalStatus(in.MaritalStatus)
	client.NumberOfChildren = in.NumberOfChildren
	client.UpdatedAt = time.Now().In(model.EAT)

	if err := u.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateClient) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return client, nil
}

func (u *ClientUsecase) Delete(ctx context.Context, clientID string) error {
	if err := u.clientRepo.Delete(ctx, clientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
