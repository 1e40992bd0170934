package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/code-redemption/internal/config"
	"github.com/iliyamo/code-redemption/internal/utils"
)

// AuthHandler verifies logins and issues access tokens.  Credential
// checking sits behind utils.CredentialVerifier so a real identity
// provider can replace the static pair without touching this handler.
type AuthHandler struct {
	Cfg      config.Config
	Verifier utils.CredentialVerifier
}

func NewAuthHandler(cfg config.Config, v utils.CredentialVerifier) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Verifier: v}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login handles POST /api/login.  Admin logins require the configured
// admin pair; user logins require only the shared user password.  A
// successful login returns the identity and a signed access token for
// the admin-only endpoints.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)

	ident, ok := h.Verifier.Verify(req.Username, req.Password, req.Role)
	if !ok {
		if req.Role == "admin" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid admin credentials"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid password. Use password: 1"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, ident.Username, ident.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"role":     ident.Role,
		"username": ident.Username,
		"name":     ident.Name,
		"token":    access.Token,
	})
}
