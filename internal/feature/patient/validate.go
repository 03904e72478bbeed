package patient

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"patient-service/internal/domain"
)

// 字段 + 规则 -> 提示文案
var messages = map[string]string{
	"name.notblank":                "Name is required",
	"email.notblank":               "Email is required",
	"email.email":                  "Email should be valid",
	"dateOfBirth.notblank":         "Date of birth is required",
	"dateOfBirth.isodate":          "Date of birth must be in yyyy-MM-dd format",
	"dateOfBirth.pastorpresent":    "Date of birth must be in the past or present",
	"address.notblank":             "Address is required",
	"registeredDate.notblank":      "Registered date is required",
	"registeredDate.isodate":       "Registered date must be in yyyy-MM-dd format",
	"registeredDate.pastorpresent": "Registered date must be in the past or present",
}

// Validator 显式校验：在进入 Service 之前执行，失败返回 KindInvalid
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	val := &Validator{v: validator.New(validator.WithRequiredStructEnabled()), now: now}

	val.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = val.v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = val.v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = val.v.RegisterValidation("pastorpresent", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(domain.DateLayout, fl.Field().String())
		if err != nil {
			return false
		}
		n := val.now()
		today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
		return !d.After(today)
	})
	return val
}

// View 校验整个 PatientView
func (val *Validator) View(v domain.PatientView) error {
	err := val.v.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.Internal("validate patient", err)
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return domain.Invalid(fields)
}

// Email 校验路径中的 email
func (val *Validator) Email(email string) error {
	if err := val.v.Var(email, "notblank,email"); err != nil {
		var ves validator.ValidationErrors
		tag := "email"
		if errors.As(err, &ves) && len(ves) > 0 {
			tag = ves[0].Tag()
		}
		return domain.Invalid(map[string]string{"email": message("email", tag)})
	}
	return nil
}

func message(field, tag string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	return field + " is invalid"
}
