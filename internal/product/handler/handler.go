package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// productRequest is shared by create and update. Presence is checked by the
// use case so that update can stay partial.
type productRequest struct {
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	DepartmentID *int64           `json:"department_id"`
	ImageURL     optionalString   `json:"image_url"`
}

// optionalString tells an absent field apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// clearable maps an explicit null to the empty string, which clears the
// stored value.
func (o optionalString) clearable() *string {
	if !o.Set {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	return o.Value
}

type productResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     *string `json:"image_url"`
	DepartmentID int64   `json:"department_id"`
}

func toResponse(p *model.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price.InexactFloat64(),
		ImageURL:     p.ImageURL,
		DepartmentID: p.DepartmentID,
	}
}

// List handles GET /products with an optional department_id query filter.
func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{}
	if raw := c.Query("department_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Message(c, http.StatusBadRequest, "invalid department_id")
			return
		}
		filters.DepartmentID = &id
	}

	products, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	res := make([]productResponse, len(products))
	for i := range products {
		res[i] = toResponse(&products[i])
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	input := &dto.CreateProductInput{
		Price:        req.Price,
		DepartmentID: req.DepartmentID,
		ImageURL:     req.ImageURL.Value,
	}
	if req.Name != nil {
		input.Name = *req.Name
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(p))
}

// Update handles PUT /admin/products/:id. Omitted fields are kept; a null
// or empty image_url clears the image.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:           id,
		Name:         req.Name,
		Price:        req.Price,
		DepartmentID: req.DepartmentID,
		ImageURL:     req.ImageURL.clearable(),
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// Delete handles DELETE /admin/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
