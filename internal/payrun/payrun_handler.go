package payrun

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/bootstrap"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/response"
)

type Handler struct {
	service Service
	audit   bootstrap.AuditLogger
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithAudit(service Service, audit bootstrap.AuditLogger) *Handler {
	return &Handler{service: service, audit: audit}
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

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req CreatePayRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(ctx, companyID, actorID, req)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var filter GetPayRunsFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.service.GetAll(ctx, companyID, filter)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	targetID := c.Param("id")

	resp, err := h.service.GetByID(ctx, companyID, targetID)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	var req UpdatePayRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(ctx, companyID, actorID, id, req)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Approve(ctx, companyID, actorID, id)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	h.auditLog(c, "PAY_RUN_APPROVED", "Pay run approved, payslips generated", map[string]any{
		"pay_run_id": id,
		"run_number": resp.RunNumber,
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Close(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Close(ctx, companyID, actorID, id)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	h.auditLog(c, "PAY_RUN_CLOSED", "Pay run closed", map[string]any{
		"pay_run_id": id,
	})

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Archive(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Archive(ctx, companyID, actorID, id)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")

	if err := h.service.Delete(ctx, companyID, id); err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
