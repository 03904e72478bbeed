package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"patient-service/internal/domain"
	"patient-service/internal/feature/patient"
)

const (
	msgNotFoundByID    = "Patient not found with ID: %s"
	msgNotFoundByEmail = "Patient not found with email: %s"
	msgEmailTaken      = "Patient already exists with the provided email address %s"
)

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "patient_service_operations_total",
		Help: "Count of patient service operations by outcome",
	},
	[]string{"op", "outcome"},
)

func init() { prometheus.MustRegister(opsTotal) }

// PatientService 业务规则：存在性、email 唯一性，错误统一为 *domain.Error
type PatientService struct {
	repo  domain.PatientRepository
	log   *zap.Logger
	newID func() uuid.UUID
}

func NewPatientService(repo domain.PatientRepository, l *zap.Logger) *PatientService {
	if l == nil {
		l = zap.NewNop()
	}
	return &PatientService{repo: repo, log: l.Named("patient"), newID: uuid.New}
}

func (s *PatientService) ListAll(ctx context.Context) (out []domain.PatientView, err error) {
	defer s.observe("list", &err)
	ps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Internal("list patients", err)
	}
	return patient.ToViews(ps), nil
}

func (s *PatientService) GetByID(ctx context.Context, id uuid.UUID) (out domain.PatientView, err error) {
	defer s.observe("get_by_id", &err)
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return out, domain.Internal("find patient", err)
	}
	if p == nil {
		return out, domain.NotFound(msgNotFoundByID, id)
	}
	return patient.ToView(*p), nil
}

func (s *PatientService) GetByEmail(ctx context.Context, email string) (out domain.PatientView, err error) {
	defer s.observe("get_by_email", &err)
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return out, domain.Internal("find patient", err)
	}
	if p == nil {
		return out, domain.NotFound(msgNotFoundByEmail, email)
	}
	return patient.ToView(*p), nil
}

// Create 先查重再写入；唯一索引冲突同样视为 Conflict
func (s *PatientService) Create(ctx context.Context, v domain.PatientView) (out domain.PatientView, err error) {
	defer s.observe("create", &err)
	taken, err := s.repo.ExistsByEmail(ctx, v.Email)
	if err != nil {
		return out, domain.Internal("check email", err)
	}
	if taken {
		return out, domain.Conflict(msgEmailTaken, v.Email)
	}

	rec, err := patient.ToRecord(v)
	if err != nil {
		return out, err
	}
	rec.ID = s.newID()
	if err = s.repo.Create(ctx, &rec); err != nil {
		return out, s.writeErr("create patient", v.Email, err)
	}
	s.log.Info("patient created", zap.String("id", rec.ID.String()))
	return patient.ToView(rec), nil
}

// Update 全量覆盖；顺序：存在性 -> email 归属 -> 写入
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, v domain.PatientView) (out domain.PatientView, err error) {
	defer s.observe("update", &err)
	found, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return out, domain.Internal("check patient", err)
	}
	if !found {
		return out, domain.NotFound(msgNotFoundByID, id)
	}
	taken, err := s.repo.ExistsByEmailAndIDNot(ctx, v.Email, id)
	if err != nil {
		return out, domain.Internal("check email", err)
	}
	if taken {
		return out, domain.Conflict(msgEmailTaken, v.Email)
	}

	rec, err := patient.ToRecord(v)
	if err != nil {
		return out, err
	}
	rec.ID = id
	if err = s.repo.Update(ctx, &rec); err != nil {
		return out, s.writeErr("update patient", v.Email, err)
	}
	return patient.ToView(rec), nil
}

func (s *PatientService) DeleteByID(ctx context.Context, id uuid.UUID) (err error) {
	defer s.observe("delete_by_id", &err)
	found, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return domain.Internal("check patient", err)
	}
	if !found {
		return domain.NotFound(msgNotFoundByID, id)
	}
	if err = s.repo.DeleteByID(ctx, id); err != nil {
		return domain.Internal("delete patient", err)
	}
	return nil
}

// DeleteByEmail 先按 email 取出记录，再按主键删除
func (s *PatientService) DeleteByEmail(ctx context.Context, email string) (err error) {
	defer s.observe("delete_by_email", &err)
	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Internal("find patient", err)
	}
	if p == nil {
		return domain.NotFound(msgNotFoundByEmail, email)
	}
	if err = s.repo.Delete(ctx, p); err != nil {
		return domain.Internal("delete patient", err)
	}
	return nil
}

func (s *PatientService) writeErr(op, email string, err error) error {
	if errors.Is(err, domain.ErrDuplicateEmail) {
		s.log.Warn("email conflict on write", zap.String("op", op))
		return domain.Conflict(msgEmailTaken, email)
	}
	return domain.Internal(op, err)
}

func (s *PatientService) observe(op string, err *error) {
	outcome := "ok"
	if *err != nil {
		outcome = domain.KindOf(*err).String()
	}
	opsTotal.WithLabelValues(op, outcome).Inc()
}
