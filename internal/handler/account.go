package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/model"
	"github.com/iliyamo/code-redemption/internal/repository"
)

// AccountHandler serves the credential account endpoints.  Every
// mutation keeps the owning product's stock counter in step inside the
// repository's transaction.
type AccountHandler struct {
	Accounts *repository.AccountRepo
}

func NewAccountHandler(a *repository.AccountRepo) *AccountHandler {
	return &AccountHandler{Accounts: a}
}

// ListByProduct handles GET /api/products/:id/accounts.
func (h *AccountHandler) ListByProduct(c echo.Context) error {
	return h.list(c, false)
}

// ListAvailableByProduct handles GET /api/products/:id/available-accounts.
func (h *AccountHandler) ListAvailableByProduct(c echo.Context) error {
	return h.list(c, true)
}

func (h *AccountHandler) list(c echo.Context, onlyAvailable bool) error {
	productID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	accounts, err := h.Accounts.ListByProduct(ctx, productID, onlyAvailable)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, accounts)
}

type createAccountReq struct {
	ProductID uint64 `json:"product_id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	LoginVia  string `json:"login_via"`
	Notes     string `json:"notes"`
}

// Create handles POST /api/accounts.  The insert and the stock
// increment commit together.
func (h *AccountHandler) Create(c echo.Context) error {
	var req createAccountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id, email and password are required"})
	}
	if req.LoginVia == "" {
		req.LoginVia = model.DefaultLoginVia
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	a := &model.Account{
		ProductID: req.ProductID,
		Email:     req.Email,
		Password:  req.Password,
		LoginVia:  req.LoginVia,
		Notes:     req.Notes,
	}
	if err := h.Accounts.Create(ctx, a); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "accountId": a.ID})
}

type bulkAccountsReq struct {
	ProductID uint64          `json:"product_id"`
	Accounts  []model.Account `json:"accounts"`
}

// Bulk handles POST /api/accounts/bulk.  Entries without both email and
// password count as failed; stock grows by the added count.
func (h *AccountHandler) Bulk(c echo.Context) error {
	var req bulkAccountsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	added, failed, err := h.Accounts.BulkCreate(ctx, req.ProductID, req.Accounts)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "added": added, "failed": failed})
}

type importAccountsReq struct {
	ProductID uint64 `json:"product_id"`
	Text      string `json:"text"`
}

// Import handles POST /api/accounts/import.  The body carries
// newline-separated "email|password|loginVia" records.
func (h *AccountHandler) Import(c echo.Context) error {
	var req importAccountsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	imported, failed, err := h.Accounts.ImportFromText(ctx, req.ProductID, req.Text)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "imported": imported, "failed": failed})
}

// Delete handles DELETE /api/accounts/:id.  Deleting a nonexistent
// account is a no-op success.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid account id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Accounts.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
