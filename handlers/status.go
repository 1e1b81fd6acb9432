package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"excusegen/config"

	"github.com/gin-gonic/gin"
)

const appVersion = "1.0.0"

// StatusHandler は死活監視系エンドポイントのハンドラーです
type StatusHandler struct {
	cfg       *config.ServerConfig
	publicDir string
	startedAt time.Time
}

// NewStatusHandler は新しいStatusHandlerを生成します
func NewStatusHandler(cfg *config.ServerConfig, publicDir string) *StatusHandler {
	return &StatusHandler{
		cfg:       cfg,
		publicDir: publicDir,
		startedAt: time.Now(),
	}
}

// HandleHealth はヘルスチェックを処理します
func (h *StatusHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   h.cfg.ServiceName,
	})
}

// HandleHealthz はKubernetes形式のヘルスチェックを処理します
func (h *StatusHandler) HandleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReady はレディネスチェックを処理します
func (h *StatusHandler) HandleReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// HandlePing は疎通確認を処理します
func (h *StatusHandler) HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// HandleMetrics はアプリケーション情報と環境情報を返します
func (h *StatusHandler) HandleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app_info": gin.H{
			"name":    h.cfg.ServiceName,
			"version": appVersion,
			"status":  "running",
		},
		"environment": gin.H{
			"port":                h.cfg.Port,
			"host":                h.cfg.Host,
			"has_token":           h.cfg.LLMToken != "",
			"endpoint_configured": h.cfg.LLMEndpoint != "",
		},
	})
}

// HandleDebug はデバッグ情報を返します。トークンの値そのものは含めません
func (h *StatusHandler) HandleDebug(c *gin.Context) {
	workingDir, _ := os.Getwd()

	filesInPublic := []string{}
	if h.publicDir != "" {
		if entries, err := os.ReadDir(h.publicDir); err == nil {
			for _, entry := range entries {
				filesInPublic = append(filesInPublic, entry.Name())
			}
		}
	}

	publicDirAbs, _ := filepath.Abs(h.publicDir)
	indexHTMLAbs, _ := filepath.Abs(filepath.Join(h.publicDir, "index.html"))

	c.JSON(http.StatusOK, gin.H{
		"environment": gin.H{
			"port":                 h.cfg.Port,
			"host":                 h.cfg.Host,
			"has_databricks_token": h.cfg.LLMToken != "",
			"databricks_endpoint":  h.cfg.LLMEndpoint,
			"go_version":           runtime.Version(),
			"working_directory":    workingDir,
			"files_in_public":      filesInPublic,
		},
		"paths": gin.H{
			"current_dir": workingDir,
			"public_dir":  publicDirAbs,
			"index_html":  indexHTMLAbs,
		},
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}
