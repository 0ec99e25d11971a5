package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/department"
	"github.com/fekuna/omnipos-storefront/internal/department/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	uc     department.UseCase
	logger logger.ZapLogger
}

func NewDepartmentHandler(uc department.UseCase, log logger.ZapLogger) *DepartmentHandler {
	return &DepartmentHandler{
		uc:     uc,
		logger: log,
	}
}

type departmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type departmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(d *model.Department) departmentResponse {
	return departmentResponse{ID: d.ID, Name: d.Name}
}

// List handles GET /departments.
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.uc.ListDepartments(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	res := make([]departmentResponse, len(departments))
	for i := range departments {
		res[i] = toResponse(&departments[i])
	}
	c.JSON(http.StatusOK, res)
}

// Create handles POST /departments.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req departmentRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	d, err := h.uc.CreateDepartment(c.Request.Context(), &dto.CreateDepartmentInput{Name: req.Name})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(d))
}

// Update handles PUT /departments/:id.
func (h *DepartmentHandler) Update(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req departmentRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	d, err := h.uc.UpdateDepartment(c.Request.Context(), &dto.UpdateDepartmentInput{ID: id, Name: req.Name})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

// Delete handles DELETE /departments/:id.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteDepartment(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
