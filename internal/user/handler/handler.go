package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/user"
	"github.com/fekuna/omnipos-storefront/internal/user/dto"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// loginRequest leaves format checks out so that any unknown address is
// answered as bad credentials.
type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
	Email       string `json:"email"`
}

type meResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Register handles POST /auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	_, err := h.uc.Register(c.Request.Context(), &dto.CredentialsInput{Email: req.Email, Password: req.Password})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	res, err := h.uc.Login(c.Request.Context(), &dto.CredentialsInput{Email: req.Email, Password: req.Password})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		IsAdmin:     res.IsAdmin,
		Email:       res.Email,
	})
}

// Me handles GET /auth/me.
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	u, err := h.uc.Me(c.Request.Context(), identity)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, meResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin})
}
