package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-manager-api/internal/application/ports"
)

// AppController serves the operational surface: store liveness and
// collection counts.
type AppController struct {
	logger      *zap.Logger
	db          ports.Pinger
	sessions    ports.Pinger
	fileService ports.FileService
}

func NewAppController(
	r *gin.Engine,
	logger *zap.Logger,
	db ports.Pinger,
	sessions ports.Pinger,
	fileService ports.FileService,
) *AppController {
	ac := &AppController{
		logger:      logger,
		db:          db,
		sessions:    sessions,
		fileService: fileService,
	}

	r.GET(RouteStatus, ac.StatusHandler)
	r.GET(RouteStats, ac.StatsHandler)

	return ac
}

func (ac *AppController) StatusHandler(c *gin.Context) {
	ctx := c.Request.Context()

	c.JSON(http.StatusOK, gin.H{
		"redis": ac.sessions.Ping(ctx) == nil,
		"db":    ac.db.Ping(ctx) == nil,
	})
}

func (ac *AppController) StatsHandler(c *gin.Context) {
	users, files, err := ac.fileService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		ac.logger.Error("Stats() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}
