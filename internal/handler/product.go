package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/model"
	"github.com/iliyamo/code-redemption/internal/repository"
)

// ProductHandler serves the product CRUD endpoints.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(p *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Products: p}
}

// List handles GET /api/products.  Products come back newest first with
// the computed available_accounts count.
func (h *ProductHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	products, err := h.Products.ListWithAvailability(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, products)
}

type createProductReq struct {
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Stock       int    `json:"stock"`
}

// Create handles POST /api/products.  A duplicate product_code violates
// the unique constraint and surfaces as a generic storage error.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductCode == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_code and name are required"})
	}
	if req.Logo == "" {
		req.Logo = model.DefaultLogo
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	p := &model.Product{
		ProductCode: req.ProductCode,
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Stock:       req.Stock,
	}
	if err := h.Products.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "productId": p.ID})
}

type updateProductReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Stock       int    `json:"stock"`
}

// Update handles PUT /api/products/:id.  Every mutable field is
// overwritten; there are no partial-patch semantics.
func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req updateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Products.Update(ctx, id, req.Name, req.Description, req.Logo, req.Stock); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete handles DELETE /api/products/:id.  Dependent codes and
// accounts are removed first, in one transaction, so no orphans are
// ever left behind.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
