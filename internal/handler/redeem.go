package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/queue"
	"github.com/iliyamo/code-redemption/internal/repository"
)

// RedemptionPublisher is the broker-facing side of a redemption: after
// a code is consumed an event goes out for downstream consumers.
type RedemptionPublisher interface {
	PublishCodeRedeemed(ctx context.Context, event queue.CodeRedeemedEvent) error
}

// RedeemHandler serves the public redemption endpoint.
type RedeemHandler struct {
	Codes     *repository.CodeRepo
	Publisher RedemptionPublisher
}

func NewRedeemHandler(cr *repository.CodeRepo, pub RedemptionPublisher) *RedeemHandler {
	return &RedeemHandler{Codes: cr, Publisher: pub}
}

type redeemReq struct {
	Code string `json:"code"`
}

// Redeem handles POST /api/redeem.  A valid unused code yields the
// bound account's credentials exactly once; the second attempt sees the
// same 404 as an unknown code.  The broker publish happens after the
// commit and never affects the response.
func (h *RedeemHandler) Redeem(c echo.Context) error {
	var req redeemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	red, err := h.Codes.Redeem(ctx, req.Code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Invalid or used code"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	if h.Publisher != nil {
		event := queue.CodeRedeemedEvent{
			Code:        req.Code,
			ProductID:   red.ProductID,
			ProductName: red.Product,
			AccountID:   red.AccountID,
			Email:       red.Email,
			LoginVia:    red.LoginVia,
			RedeemedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publisher.PublishCodeRedeemed(pubCtx, event)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "account": red})
}
