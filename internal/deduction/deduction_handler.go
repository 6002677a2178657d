package deduction

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/apperror"
	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var req CreateDeductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(ctx, companyID, req)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAllByEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	employeeID := c.Query("employee_id")

	if employeeID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "employee_id query parameter is required", nil)
		return
	}

	resp, err := h.service.GetAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	id := c.Param("id")

	if err := h.service.Deactivate(ctx, companyID, id); err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true}, nil)
}
