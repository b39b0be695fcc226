package handlers

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"taskvault/internal/adapter/http/middleware"
)

const (
	StatusOk          = "ok"
	StatusDown        = "down"
	healthPingTimeout = 2 * time.Second
)

// StoragePinger reports whether the active storage backend is reachable.
type StoragePinger interface {
	StorageType() string
	Ping(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Storage     string `json:"storage"`
	StorageType string `json:"storage_type"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	storage StoragePinger
}

func NewHealthHandler(storage StoragePinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := 200
	message := StatusOk

	if !h.checkStorage(ctx) {
		statusCode = 500
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	storageStatus := StatusDown
	if h.checkStorage(ctx) {
		storageStatus = StatusOk
	}

	storageType := ""
	if h.storage != nil {
		storageType = h.storage.StorageType()
	}

	c.JSON(200, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Storage:     storageStatus,
			StorageType: storageType,
		},
	})
}

func (h *HealthHandler) checkStorage(ctx context.Context) bool {
	if h.storage == nil {
		return false
	}
	// Avoid hanging health checks if the backend stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.storage.Ping(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
