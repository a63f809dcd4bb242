package model

import "time"

// ナイロビ時間（UTC+3）。行のタイムスタンプはこれで揃える。
var EAT = time.FixedZone("EAT", 3*60*60)

type MaritalStatus string

const (
	MaritalMarried MaritalStatus = "married"
	MaritalSingle  MaritalStatus = "single"
	MaritalWidowed MaritalStatus = "widowed"
)

// 融資先クライアント。
type Client struct {
	ClientID           string        `json:"client_id" gorm:"type:uuid;primaryKey"`
	ClientName         string        `json:"client_name" gorm:"not null"`
	NationalIDNumber   string        `json:"national_id_number" gorm:"uniqueIndex;not null"`
	ClientPhoneNumber  string        `json:"client_phone_number" gorm:"uniqueIndex;not null"`
	ClientBusinessName string        `json:"client_business_name" gorm:"not null"`
	ClientResidence    string        `json:"client_residence" gorm:"not null"`
	DateOfBirth        time.Time     `json:"date_of_birth" gorm:"type:date;not null"`
	NextOfKinName      string        `json:"next_of_kin_name" gorm:"not null"`
	NextOfKinContact   string        `json:"next_of_kin_contact" gorm:"not null"`
	MaritalStatus      MaritalStatus `json:"marital_status" gorm:"type:varchar(20);not null"`
	NumberOfChildren   int           `json:"number_of_children" gorm:"not null"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	// クライアント1人に保証人複数。クライアント削除で保証人も消す。
	Guarantors []Guarantor `json:"guarantors,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// 保証人。クライアント1人に紐づく。
type Guarantor struct {
	GuarantorID               string    `json:"guarantor_id" gorm:"type:uuid;primaryKey"`
	ClientID                  string    `json:"client_id" gorm:"type:uuid;not null;index"`
	GuarantorName             string    `json:"guarantor_name" gorm:"not null"`
	NationalIDNumber          string    `json:"national_id_number" gorm:"uniqueIndex;not null"`
	GuarantorPhoneNumber      string    `json:"guarantor_phone_number" gorm:"uniqueIndex;not null"`
	GuarantorBusinessName     string    `json:"guarantor_business_name" gorm:"not null"`
	GuarantorBusinessLocation string    `json:"guarantor_business_location" gorm:"not null"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`

	BusinessPhotos []GuarantorBusinessPhoto `json:"guarantor_business_photos,omitempty" gorm:"foreignKey:GuarantorID;constraint:OnDelete:CASCADE"`
}

// 保証人の事業所写真。差し替えは削除してから再アップロード。
type GuarantorBusinessPhoto struct {
	ImageID     string    `json:"image_id" gorm:"type:uuid;primaryKey"`
	GuarantorID string    `json:"guarantor_id" gorm:"type:uuid;not null;index"`
	Link        string    `json:"link" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
