package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/application/services"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.GET(RouteConnect, ac.ConnectHandler)
	r.GET(RouteDisconnect, ac.DisconnectHandler)

	return ac
}

func (ac *AuthController) ConnectHandler(c *gin.Context) {
	token, err := ac.authService.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		ac.logger.Error("Authenticate() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ac *AuthController) DisconnectHandler(c *gin.Context) {
	err := ac.authService.Revoke(c.Request.Context(), c.GetHeader(HeaderToken))
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		ac.logger.Error("Revoke() error", zap.Error(err))
		return
	}

	c.Status(http.StatusNoContent)
}
