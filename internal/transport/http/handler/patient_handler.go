package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"patient-service/internal/domain"
	"patient-service/internal/feature/patient"
	resp "patient-service/internal/transport/http/response"
)

// PatientService handler 依赖的业务接口
type PatientService interface {
	ListAll(ctx context.Context) ([]domain.PatientView, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.PatientView, error)
	GetByEmail(ctx context.Context, email string) (domain.PatientView, error)
	Create(ctx context.Context, v domain.PatientView) (domain.PatientView, error)
	Update(ctx context.Context, id uuid.UUID, v domain.PatientView) (domain.PatientView, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByEmail(ctx context.Context, email string) error
}

type PatientHandler struct {
	svc PatientService
	val *patient.Validator
	log *zap.Logger
}

func NewPatientHandler(svc PatientService, val *patient.Validator, l *zap.Logger) *PatientHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &PatientHandler{svc: svc, val: val, log: l}
}

// MountAPI /patients；静态段 email 与 :id 并存（gin 优先匹配静态段）
func (h *PatientHandler) MountAPI(r gin.IRouter) {
	g := r.Group("/patients")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.DeleteByID)
	g.GET("/email/:email", h.GetByEmail)
	g.DELETE("/email/:email", h.DeleteByEmail)
}

func (h *PatientHandler) Priority() int { return 10 }

func (h *PatientHandler) List(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	out, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

func (h *PatientHandler) GetByEmail(c *gin.Context) {
	out, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

func (h *PatientHandler) Create(c *gin.Context) {
	v, ok := h.bindView(c)
	if !ok {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), v)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(out))
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	v, ok := h.bindView(c)
	if !ok {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), id, v)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, resp.OK(out))
}

func (h *PatientHandler) DeleteByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		WriteError(c, h.log, err)
		return
	}
	if err := h.svc.DeleteByID(c.Request.Context(), id); err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, resp.OK(nil))
}

func (h *PatientHandler) DeleteByEmail(c *gin.Context) {
	email := c.Param("email")
	if err := h.val.Email(email); err != nil {
		WriteError(c, h.log, err)
		return
	}
	if err := h.svc.DeleteByEmail(c.Request.Context(), email); err != nil {
		WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusAccepted, resp.OK(nil))
}

// bindView 解析 JSON + 字段校验；失败时已写响应
func (h *PatientHandler) bindView(c *gin.Context) (domain.PatientView, bool) {
	var v domain.PatientView
	if err := c.ShouldBindJSON(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error("Request body too large"))
			return v, false
		}
		WriteError(c, h.log, domain.BadRequest("Malformed request body: %s", err.Error()))
		return v, false
	}
	v.ID = "" // 客户端传入的 id 一律忽略
	if err := h.val.View(v); err != nil {
		WriteError(c, h.log, err)
		return v, false
	}
	return v, true
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.BadRequest("Invalid argument type: id should be a valid UUID, got '%s'", raw)
	}
	return id, nil
}
