package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"excusegen/logger"
	"excusegen/middleware"
	"excusegen/models"
	"excusegen/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExcuseHandler は言い訳メール生成APIのハンドラーです
type ExcuseHandler struct {
	llmService *services.LLMService
}

// NewExcuseHandler は新しいExcuseHandlerを生成します
func NewExcuseHandler(llm *services.LLMService) *ExcuseHandler {
	return &ExcuseHandler{
		llmService: llm,
	}
}

// HandleGenerateExcuse は言い訳メールの生成リクエストを処理します
func (h *ExcuseHandler) HandleGenerateExcuse(c *gin.Context) {
	ctx := c.Request.Context()

	logFields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("handler", "HandleGenerateExcuse"),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}

	var req models.ExcuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Logger.Warn("リクエストのバインドに失敗しました",
			append(logFields, zap.Error(err))...)
		c.JSON(http.StatusBadRequest, models.NewExcuseErrorResponse("Invalid request format"))
		return
	}

	if err := req.Validate(); err != nil {
		logger.Logger.Warn("リクエストの検証に失敗しました",
			append(logFields, zap.Error(err))...)
		genErr := models.NewValidationError(err)
		c.JSON(genErr.StatusCode, models.NewExcuseErrorResponse(genErr.Message))
		return
	}

	// 資格情報はログへ含めない
	logFields = append(logFields,
		zap.String("category", req.Category),
		zap.String("tone", req.Tone),
		zap.Int("seriousness", req.Seriousness),
		zap.String("recipient_name", req.RecipientName),
		zap.String("sender_name", req.SenderName),
		zap.String("eta_when", req.EtaWhen),
	)

	logger.Logger.Info("言い訳メールの生成を開始します", logFields...)

	draft, err := h.llmService.GenerateExcuse(ctx, &req)
	if err != nil {
		status, message := classifyGenerationError(err)
		logger.Logger.Error("言い訳メールの生成に失敗しました",
			append(logFields,
				zap.Int("status_code", status),
				zap.Error(err))...)
		c.JSON(status, models.NewExcuseErrorResponse(message))
		return
	}

	logger.Logger.Info("言い訳メールの生成が完了しました",
		append(logFields,
			zap.String("subject", draft.Subject),
			zap.Int("body_length", len(draft.Body)))...)

	c.JSON(http.StatusOK, models.NewExcuseResponse(draft))
}

// classifyGenerationError はエラーから外部向けステータスとメッセージを導きます
func classifyGenerationError(err error) (int, string) {
	var genErr *models.GenerationError
	if errors.As(err, &genErr) {
		return genErr.StatusCode, genErr.Message
	}
	return http.StatusInternalServerError, fmt.Sprintf("Failed to generate excuse: %v", err)
}
