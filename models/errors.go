package models

import (
	"fmt"
	"net/http"
)

// ErrorKind は言い訳メール生成処理の失敗分類を定義します
type ErrorKind string

const (
	ErrKindValidation         ErrorKind = "VALIDATION_ERROR"
	ErrKindConfiguration      ErrorKind = "CONFIGURATION_ERROR"
	ErrKindUpstreamHTTP       ErrorKind = "UPSTREAM_HTTP_ERROR"
	ErrKindUpstreamTimeout    ErrorKind = "UPSTREAM_TIMEOUT"
	ErrKindUpstreamUnexpected ErrorKind = "UPSTREAM_UNEXPECTED_ERROR"
	ErrKindInvalidShape       ErrorKind = "INVALID_UPSTREAM_SHAPE"
)

// GenerationError は分類と外部向けステータスを持つエラーです
type GenerationError struct {
	Kind       ErrorKind // 失敗分類
	StatusCode int       // 外部へ返すHTTPステータス
	Message    string    // 利用者向けメッセージ
	Err        error     // 原因となったエラー
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewValidationError はリクエスト検証失敗のエラーを生成します
func NewValidationError(err error) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindValidation,
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		Err:        err,
	}
}

// NewConfigurationError は必須設定の欠落を表すエラーを生成します
func NewConfigurationError(message string) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindConfiguration,
		StatusCode: http.StatusServiceUnavailable,
		Message:    message,
	}
}

// NewUpstreamHTTPError は推論エンドポイントの異常ステータスを表すエラーを
// 生成します。ステータスコードは上流のものをそのまま引き継ぎます
func NewUpstreamHTTPError(statusCode int, body string) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindUpstreamHTTP,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("Databricks API error: %s", body),
	}
}

// NewUpstreamTimeoutError は推論エンドポイントへの問い合わせの
// タイムアウトを表すエラーを生成します
func NewUpstreamTimeoutError(err error) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindUpstreamTimeout,
		StatusCode: http.StatusGatewayTimeout,
		Message:    "Timeout calling Databricks API",
		Err:        err,
	}
}

// NewUpstreamUnexpectedError は転送やデコードの予期しない失敗を表す
// エラーを生成します
func NewUpstreamUnexpectedError(err error) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindUpstreamUnexpected,
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Unexpected error: %v", err),
		Err:        err,
	}
}

// NewInvalidShapeError は応答エンベロープの形式不正を表すエラーを生成します
func NewInvalidShapeError(err error) *GenerationError {
	return &GenerationError{
		Kind:       ErrKindInvalidShape,
		StatusCode: http.StatusInternalServerError,
		Message:    "Invalid response format from Databricks API",
		Err:        err,
	}
}
