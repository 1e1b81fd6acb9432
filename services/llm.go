package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"excusegen/logger"
	"excusegen/models"

	"go.uber.org/zap"
)

// LLMService はモデルサービングエンドポイントへの問い合わせを担当します
type LLMService struct {
	endpoint string
	token    string
	client   *http.Client
}

const defaultUpstreamTimeout = 30 * time.Second

// NewLLMService は新しいLLMServiceを生成します
func NewLLMService(endpoint, token string) *LLMService {
	service := &LLMService{
		endpoint: endpoint,
		token:    token,
		client: &http.Client{
			Timeout: defaultUpstreamTimeout,
		},
	}

	logger.Logger.Info("LLMサービスを初期化しました",
		zap.Bool("has_endpoint", endpoint != ""),
		zap.Bool("has_token", token != ""),
		zap.Duration("timeout", defaultUpstreamTimeout),
	)

	return service
}

// GenerateExcuse はリクエスト1件に対して推論エンドポイントを1回だけ呼び出し、
// 正規化済みのドラフトを返します。リトライは行いません
func (s *LLMService) GenerateExcuse(ctx context.Context, req *models.ExcuseRequest) (*models.ExcuseDraft, error) {
	if s.token == "" {
		logger.Logger.Error("APIトークンが設定されていません")
		return nil, models.NewConfigurationError("DATABRICKS_API_TOKEN not configured")
	}

	if s.endpoint == "" {
		logger.Logger.Error("エンドポイントURLが設定されていません")
		return nil, models.NewConfigurationError("DATABRICKS_ENDPOINT_URL not configured")
	}

	prompt := BuildExcusePrompt(req)
	payload := models.NewInvocationPayload(prompt)

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error("ペイロードのJSONエンコードに失敗しました",
			zap.Error(err),
		)
		return nil, models.NewUpstreamUnexpectedError(fmt.Errorf("failed to marshal payload: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		logger.Logger.Error("HTTPリクエストの作成に失敗しました",
			zap.Error(err),
			zap.String("endpoint", s.endpoint),
		)
		return nil, models.NewUpstreamUnexpectedError(fmt.Errorf("failed to create HTTP request: %v", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.token)

	// リクエスト送信情報はDEBUGレベル
	logger.Logger.Debug("推論エンドポイントにリクエストを送信します",
		zap.String("method", httpReq.Method),
		zap.String("endpoint", httpReq.URL.String()),
		zap.Int("payload_bytes", len(payloadBytes)),
	)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			logger.Logger.Error("推論エンドポイントへの問い合わせがタイムアウトしました",
				zap.Error(err),
				zap.Duration("timeout", defaultUpstreamTimeout),
			)
			return nil, models.NewUpstreamTimeoutError(err)
		}
		logger.Logger.Error("HTTPリクエストの実行に失敗しました",
			zap.Error(err),
		)
		return nil, models.NewUpstreamUnexpectedError(fmt.Errorf("failed to make HTTP request: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			logger.Logger.Error("レスポンスボディの読み取りがタイムアウトしました",
				zap.Error(err),
			)
			return nil, models.NewUpstreamTimeoutError(err)
		}
		logger.Logger.Error("レスポンスボディの読み取りに失敗しました",
			zap.Error(err),
		)
		return nil, models.NewUpstreamUnexpectedError(fmt.Errorf("failed to read response body: %v", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Logger.Error("推論エンドポイントが異常なステータスを返しました",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response_body", string(respBody)),
		)
		return nil, models.NewUpstreamHTTPError(resp.StatusCode, string(respBody))
	}

	// 応答エンベロープはDEBUGレベル
	logger.Logger.Debug("推論エンドポイントの応答を受信しました",
		zap.Int("status_code", resp.StatusCode),
		zap.String("response_body", string(respBody)),
	)

	var prediction models.PredictionResponse
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			logger.Logger.Error("応答エンベロープの形式が不正です",
				zap.Error(err),
			)
			return nil, models.NewInvalidShapeError(err)
		}
		logger.Logger.Error("応答のデコードに失敗しました",
			zap.Error(err),
		)
		return nil, models.NewUpstreamUnexpectedError(fmt.Errorf("failed to decode response: %v", err))
	}

	draft, err := NormalizeResponse(&prediction)
	if err != nil {
		logger.Logger.Error("応答の正規化に失敗しました",
			zap.Error(err),
		)
		return nil, err
	}

	// 処理完了のログは重要なのでINFOレベル
	logger.Logger.Info("ドラフトの生成が完了しました",
		zap.Int("status_code", resp.StatusCode),
		zap.Int("subject_length", len(draft.Subject)),
		zap.Int("body_length", len(draft.Body)),
	)

	return draft, nil
}

// isTimeout は転送エラーがタイムアウト起因かどうかを判定します
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
