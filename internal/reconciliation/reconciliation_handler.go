package reconciliation

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

func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	tokenCompanyID := c.GetString("company_id")
	targetCompanyID := c.Param("id")

	// Company di path harus sama dengan company di token.
	if targetCompanyID != tokenCompanyID {
		response.ServiceError(c, apperror.ErrForbidden)
		return
	}

	var filter GetStatsFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetStats(ctx, targetCompanyID, filter)
	if err != nil {
		response.ServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
