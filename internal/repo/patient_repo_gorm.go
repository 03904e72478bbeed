package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"patient-service/internal/core/database"
	"patient-service/internal/domain"
)

type PatientRepo struct{ db *gorm.DB }

var _ domain.PatientRepository = (*PatientRepo)(nil)

func NewPatientRepo(db *gorm.DB) *PatientRepo { return &PatientRepo{db: db} }

func (r *PatientRepo) FindAll(ctx context.Context) ([]domain.Patient, error) {
	ps := make([]domain.Patient, 0)
	if err := r.db.WithContext(ctx).Find(&ps).Error; err != nil {
		return nil, fmt.Errorf("find all patients: %w", err)
	}
	return ps, nil
}

// FindByID 查不到返回 (nil, nil)
func (r *PatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	var p domain.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find patient by id: %w", err)
	}
	return &p, nil
}

// FindByEmail 查不到返回 (nil, nil)
func (r *PatientRepo) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	var p domain.Patient
	err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find patient by email: %w", err)
	}
	return &p, nil
}

func (r *PatientRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *PatientRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *PatientRepo) ExistsByEmailAndIDNot(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	return r.exists(ctx, "email = ? AND id <> ?", email, id)
}

func (r *PatientRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Patient{}).Where(query, args...).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count patients: %w", err)
	}
	return n > 0, nil
}

// Create 唯一索引冲突映射为 domain.ErrDuplicateEmail
func (r *PatientRepo) Create(ctx context.Context, p *domain.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// Update 全字段覆盖（含 email），主键不变
func (r *PatientRepo) Update(ctx context.Context, p *domain.Patient) error {
	err := r.db.WithContext(ctx).Model(&domain.Patient{}).
		Where("id = ?", p.ID).
		Select("name", "email", "date_of_birth", "address", "registered_date").
		Updates(p).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

func (r *PatientRepo) Delete(ctx context.Context, p *domain.Patient) error {
	if err := r.db.WithContext(ctx).Delete(p).Error; err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

func (r *PatientRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Patient{}).Error; err != nil {
		return fmt.Errorf("delete patient by id: %w", err)
	}
	return nil
}
