package models

import "fmt"

// 真面目度の許容範囲（1=とてもふざけた〜5=真剣）
const (
	SeriousnessMin = 1
	SeriousnessMax = 5
)

// ExcuseRequest は言い訳メール生成リクエストの構造を定義します
type ExcuseRequest struct {
	Category      string `json:"category" binding:"required"`       // 遅刻、欠席など
	Tone          string `json:"tone" binding:"required"`           // 文体（formal、casualなど）
	Seriousness   int    `json:"seriousness" binding:"gte=1,lte=5"` // 真面目度（1〜5）
	RecipientName string `json:"recipient_name" binding:"required"`
	SenderName    string `json:"sender_name" binding:"required"`
	EtaWhen       string `json:"eta_when" binding:"required"`
}

// Validate はリクエストの内容を検証します
func (r *ExcuseRequest) Validate() error {
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}
	if r.Tone == "" {
		return fmt.Errorf("tone is required")
	}
	if r.Seriousness < SeriousnessMin || r.Seriousness > SeriousnessMax {
		return fmt.Errorf("seriousness must be between %d and %d, got %d", SeriousnessMin, SeriousnessMax, r.Seriousness)
	}
	if r.RecipientName == "" {
		return fmt.Errorf("recipient_name is required")
	}
	if r.SenderName == "" {
		return fmt.Errorf("sender_name is required")
	}
	if r.EtaWhen == "" {
		return fmt.Errorf("eta_when is required")
	}
	return nil
}

// ExcuseDraft は正規化済みの生成結果（件名と本文）を保持します
type ExcuseDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ExcuseResponse は言い訳メール生成APIのレスポンスを定義します
type ExcuseResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewExcuseResponse は生成成功時のレスポンスを生成します
func NewExcuseResponse(draft *ExcuseDraft) *ExcuseResponse {
	return &ExcuseResponse{
		Subject: draft.Subject,
		Body:    draft.Body,
		Success: true,
	}
}

// NewExcuseErrorResponse は生成失敗時のレスポンスを生成します
func NewExcuseErrorResponse(message string) *ExcuseResponse {
	return &ExcuseResponse{
		Success: false,
		Error:   message,
	}
}
