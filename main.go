package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"excusegen/config"
	"excusegen/handlers"
	"excusegen/logger"
	"excusegen/middleware"
	"excusegen/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 設定の初期化
	cfg, err := config.InitConfig()
	if err != nil {
		logger.Logger.Fatal("設定の初期化に失敗しました", zap.Error(err))
	}

	// サービスの初期化
	llmService := services.NewLLMService(cfg.LLMEndpoint, cfg.LLMToken)
	mailService := services.NewMailService(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFromAddr)

	// ルーターの設定
	r := gin.New()

	// ミドルウェア設定
	middlewareConfig := &middleware.Config{
		EnableLogger: true,
		EnableCORS:   true,
	}
	middleware.SetupMiddleware(r, middlewareConfig)

	// 公開ディレクトリの探索
	publicDir := handlers.ResolvePublicDir()

	// ハンドラーの設定
	excuseHandler := handlers.NewExcuseHandler(llmService)
	sendHandler := handlers.NewSendHandler(mailService)
	statusHandler := handlers.NewStatusHandler(cfg, publicDir)

	r.POST("/api/generate-excuse", excuseHandler.HandleGenerateExcuse)
	r.POST("/api/send-excuse", sendHandler.HandleSendExcuse)

	r.GET("/health", statusHandler.HandleHealth)
	r.GET("/healthz", statusHandler.HandleHealthz)
	r.GET("/ready", statusHandler.HandleReady)
	r.GET("/ping", statusHandler.HandlePing)
	r.GET("/metrics", statusHandler.HandleMetrics)
	r.GET("/debug", statusHandler.HandleDebug)

	// フロントエンド配信
	handlers.RegisterStatic(r, publicDir)

	// サーバーの設定と起動
	srv := config.SetupServer(r, cfg)

	// グレースフルシャットダウンの実装
	handleGracefulShutdown(srv, cfg.ShutdownTimeout)
}

func handleGracefulShutdown(srv *http.Server, timeout time.Duration) {
	// サーバーを別のゴルーチンで起動
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("サーバーの起動に失敗しました", zap.Error(err))
		}
	}()

	// シグナルの受信設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Logger.Info("シャットダウンを開始します...")

	// シャットダウンのタイムアウト設定
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// グレースフルシャットダウンの実行
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("サーバーのシャットダウンでエラーが発生", zap.Error(err))
	}

	logger.Logger.Info("サーバーを正常に終了しました")
}
