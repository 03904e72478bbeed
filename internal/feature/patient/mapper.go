package patient

import (
	"time"

	"github.com/google/uuid"

	"patient-service/internal/domain"
)

// ToRecord 线上 DTO -> 持久化记录；ID 为空时保持零值，由调用方分配
func ToRecord(v domain.PatientView) (domain.Patient, error) {
	dob, err := parseDate(v.DateOfBirth)
	if err != nil {
		return domain.Patient{}, err
	}
	reg, err := parseDate(v.RegisteredDate)
	if err != nil {
		return domain.Patient{}, err
	}
	p := domain.Patient{
		Name:           v.Name,
		Email:          v.Email,
		DateOfBirth:    dob,
		Address:        v.Address,
		RegisteredDate: reg,
	}
	if v.ID != "" {
		id, err := uuid.Parse(v.ID)
		if err != nil {
			return domain.Patient{}, domain.BadRequest("Invalid argument: invalid patient id '%s'", v.ID)
		}
		p.ID = id
	}
	return p, nil
}

// ToView 持久化记录 -> 线上 DTO
func ToView(p domain.Patient) domain.PatientView {
	v := domain.PatientView{
		Name:           p.Name,
		Email:          p.Email,
		DateOfBirth:    formatDate(p.DateOfBirth),
		Address:        p.Address,
		RegisteredDate: formatDate(p.RegisteredDate),
	}
	if p.ID != uuid.Nil {
		v.ID = p.ID.String()
	}
	return v
}

func ToViews(ps []domain.Patient) []domain.PatientView {
	out := make([]domain.PatientView, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToView(p))
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, domain.BadRequest("Invalid argument: Invalid date format, expected 'yyyy-MM-dd': %s", s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	// 部分驱动以本地时区返回 date 列，只取日历日期
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
}
