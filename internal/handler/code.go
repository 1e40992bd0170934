package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/model"
	"github.com/iliyamo/code-redemption/internal/repository"
	"github.com/iliyamo/code-redemption/internal/utils"
)

// CodeHandler mints redemption codes.  Minting reserves the bound
// account, so both the single and the batch variant run the code
// insert and the status flip in one transaction; the batch variant
// additionally makes the whole batch all-or-nothing.
type CodeHandler struct {
	Products *repository.ProductRepo
	Accounts *repository.AccountRepo
	Codes    *repository.CodeRepo
}

func NewCodeHandler(p *repository.ProductRepo, a *repository.AccountRepo, cr *repository.CodeRepo) *CodeHandler {
	return &CodeHandler{Products: p, Accounts: a, Codes: cr}
}

type generateReq struct {
	ProductID    uint64 `json:"product_id"`
	AccountID    uint64 `json:"account_id"`
	CustomPrefix string `json:"custom_prefix"`
}

// Generate handles POST /api/codes/generate.  The target account must
// exist, belong to the product and still be available; on success it
// transitions to reserved.  Product stock is untouched: reservation
// does not change how many units remain un-consumed.
func (h *CodeHandler) Generate(c echo.Context) error {
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	product, err := h.Products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	account, err := h.Accounts.GetAvailableForProduct(ctx, req.AccountID, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Account not found or not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	tx, err := h.Codes.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	prefix := utils.CodePrefix(product.ProductCode, req.CustomPrefix)
	pc, err := h.mintCodeTx(ctx, tx, prefix, product.ID, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCodeGenerationExhausted) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate unique code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"success": true, "code": pc.Code, "codeId": pc.ID})
}

type generateBatchReq struct {
	ProductID    uint64 `json:"product_id"`
	Count        int    `json:"count"`
	CustomPrefix string `json:"custom_prefix"`
}

// generatedCode is one entry of the batch response.
type generatedCode struct {
	Code      string `json:"code"`
	AccountID uint64 `json:"account_id"`
	Email     string `json:"email"`
}

// GenerateBatch handles POST /api/codes/generate-multiple.  It reserves
// count available accounts at once.  When fewer are available the
// request fails with the actual count and reserves nothing; a
// generation failure partway through rolls the whole batch back.
func (h *CodeHandler) GenerateBatch(c echo.Context) error {
	var req generateBatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Count <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be positive"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	product, err := h.Products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	tx, err := h.Codes.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	available, err := h.Accounts.ListAvailableTx(ctx, tx, product.ID, req.Count)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if len(available) < req.Count {
		insufficient := &repository.InsufficientAccountsError{Available: len(available), Requested: req.Count}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": insufficient.Error()})
	}

	prefix := utils.CodePrefix(product.ProductCode, req.CustomPrefix)
	codes := make([]generatedCode, 0, req.Count)
	for _, account := range available {
		pc, err := h.mintCodeTx(ctx, tx, prefix, product.ID, account.ID)
		if err != nil {
			if errors.Is(err, repository.ErrCodeGenerationExhausted) {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate unique code"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		codes = append(codes, generatedCode{Code: pc.Code, AccountID: account.ID, Email: account.Email})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"success": true, "codes": codes})
}

// ListByProduct handles GET /api/codes/:product_id.
func (h *CodeHandler) ListByProduct(c echo.Context) error {
	productID, ok := pathID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	codes, err := h.Codes.ListByProduct(ctx, productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, codes)
}

// mintCodeTx generates a collision-free code (bounded retry), inserts
// the code row and flips the account to reserved, all within the given
// transaction.
func (h *CodeHandler) mintCodeTx(ctx context.Context, tx *sql.Tx, prefix string, productID, accountID uint64) (*model.ProductCode, error) {
	var code string
	for attempt := 0; ; attempt++ {
		if attempt >= utils.MaxCodeAttempts {
			return nil, repository.ErrCodeGenerationExhausted
		}
		candidate, err := utils.GenerateShortCode(prefix)
		if err != nil {
			return nil, err
		}
		taken, err := h.Codes.ExistsTx(ctx, tx, candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			code = candidate
			break
		}
	}
	pc := &model.ProductCode{Code: code, ProductID: productID, AccountID: accountID}
	if err := h.Codes.CreateTx(ctx, tx, pc); err != nil {
		return nil, err
	}
	if err := h.Accounts.MarkStatusTx(ctx, tx, accountID, model.AccountReserved); err != nil {
		return nil, err
	}
	return pc, nil
}
