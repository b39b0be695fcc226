package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/adapter/http/mapper"
	"taskvault/internal/adapter/http/middleware"
	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
	"taskvault/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidAuthPayload, lang),
		)
		return
	}

	session, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgEmailTaken, lang),
			)
			return
		}
		zap.L().Error("failed to register user", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailRegister, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token: session.Token,
		User:  mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidAuthPayload, lang),
		)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}
		zap.L().Error("failed to log user in", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailLogin, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token: session.Token,
		User:  mapper.ToUserItem(session.User),
	})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	lang := middleware.GetLang(c)

	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}
		zap.L().Error("failed to load current user", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCurrentUser, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItem(*user))
}
