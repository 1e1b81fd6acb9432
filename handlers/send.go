package handlers

import (
	"errors"
	"net/http"

	"excusegen/logger"
	"excusegen/middleware"
	"excusegen/models"
	"excusegen/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SendExcuseRequest はドラフト送信リクエストの構造を定義します
type SendExcuseRequest struct {
	ToEmail string `json:"to_email" binding:"required,email"`
	ToName  string `json:"to_name"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SendHandler はドラフト送信APIのハンドラーです
type SendHandler struct {
	mailService *services.MailService
}

// NewSendHandler は新しいSendHandlerを生成します
func NewSendHandler(mailService *services.MailService) *SendHandler {
	return &SendHandler{
		mailService: mailService,
	}
}

// HandleSendExcuse は生成済みドラフトのメール送信リクエストを処理します
func (h *SendHandler) HandleSendExcuse(c *gin.Context) {
	ctx := c.Request.Context()

	logFields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("handler", "HandleSendExcuse"),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}

	// リクエストのバリデーション
	var req SendExcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("リクエストのバインドに失敗しました",
			append(logFields, zap.Error(err))...)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	logFields = append(logFields, zap.String("to_email", req.ToEmail))

	draft := &models.ExcuseDraft{
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := h.mailService.SendDraft(ctx, draft, req.ToName, req.ToEmail); err != nil {
		var genErr *models.GenerationError
		if errors.As(err, &genErr) {
			logger.Logger.Error("メール送信に必要な設定が不足しています",
				append(logFields, zap.Error(err))...)
			c.JSON(genErr.StatusCode, gin.H{"error": genErr.Message})
			return
		}

		logger.Logger.Error("メール送信に失敗しました",
			append(logFields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	logger.Logger.Info("言い訳メールを送信しました", logFields...)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Excuse email sent successfully",
		"to_email": req.ToEmail,
	})
}
