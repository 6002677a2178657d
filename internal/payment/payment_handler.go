package payment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/bootstrap"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	audit   bootstrap.AuditLogger
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, audit bootstrap.AuditLogger) *Handler {
	return &Handler{service: service, rdb: rdb, audit: audit}
}

func (h *Handler) auditLog(c *gin.Context, action, message string, meta map[string]any) {
	if h.audit == nil {
		return
	}
	h.audit.Log(c.Request.Context(), bootstrap.AuditLog{
		Action:  action,
		Actor:   c.GetString("user_id"),
		Message: message,
		Meta:    meta,
	})
}

// Apply menerima pembayaran untuk satu payslip. POST ini idempoten via
// Idempotency-Key: lock dilepas di defer, response sukses di-cache 24 jam.
func (h *Handler) Apply(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	payslipID := c.Param("id")

	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Apply(c.Request.Context(), companyID, actorID, payslipID, req)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	h.auditLog(c, "payment.apply", "payment recorded", map[string]any{
		"payment_id": resp.ID,
		"payslip_id": payslipID,
		"amount":     resp.Amount,
	})

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Reverse(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	paymentID := c.Param("id")

	var req ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reverse(c.Request.Context(), companyID, actorID, paymentID, req)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	h.auditLog(c, "payment.reverse", "payment reversed", map[string]any{
		"payment_id": paymentID,
		"reason":     req.Reason,
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListByPayslip(c *gin.Context) {
	companyID := c.GetString("company_id")
	payslipID := c.Param("id")

	resp, err := h.service.ListByPayslip(c.Request.Context(), companyID, payslipID)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetRemaining(c *gin.Context) {
	companyID := c.GetString("company_id")
	payslipID := c.Param("id")

	resp, err := h.service.GetRemaining(c.Request.Context(), companyID, payslipID)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
