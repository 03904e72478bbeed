package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateLayout 线上传输的日期格式（yyyy-MM-dd）
const DateLayout = "2006-01-02"

// Patient 持久化记录
type Patient struct {
	ID             uuid.UUID `gorm:"primaryKey;type:varchar(36)"`
	Name           string    `gorm:"size:255;not null"`
	Email          string    `gorm:"uniqueIndex:idx_patient_email;size:191;not null"`
	DateOfBirth    time.Time `gorm:"column:date_of_birth;type:date;not null"`
	Address        string    `gorm:"size:512;not null"`
	RegisteredDate time.Time `gorm:"column:registered_date;type:date;not null"`
}

func (Patient) TableName() string { return "patient" }

// PatientView 线上表示：日期为字符串，创建时 id 为空
type PatientView struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"           validate:"notblank"`
	Email          string `json:"email"          validate:"notblank,email"`
	DateOfBirth    string `json:"dateOfBirth"    validate:"notblank,isodate,pastorpresent"`
	Address        string `json:"address"        validate:"notblank"`
	RegisteredDate string `json:"registeredDate" validate:"notblank,isodate,pastorpresent"`
}

// PatientRepository 持久化网关
type PatientRepository interface {
	FindAll(ctx context.Context) ([]Patient, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByEmail(ctx context.Context, email string) (*Patient, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailAndIDNot(ctx context.Context, email string, id uuid.UUID) (bool, error)
	Create(ctx context.Context, p *Patient) error
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, p *Patient) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
