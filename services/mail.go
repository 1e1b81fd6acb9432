package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"excusegen/logger"
	"excusegen/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// MailService はSendGrid経由でのドラフト送信を担当します
type MailService struct {
	apiKey   string
	fromName string
	fromAddr string
	host     string // 接続先の上書き（空の場合はSendGridの既定ホスト）
}

// NewMailService は新しいMailServiceを生成します
func NewMailService(apiKey, fromName, fromAddr string) *MailService {
	service := &MailService{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
	}

	logger.Logger.Info("メールサービスを初期化しました",
		zap.Bool("has_api_key", apiKey != ""),
		zap.Bool("has_from_address", fromAddr != ""),
	)

	return service
}

// SendDraft は生成済みドラフトを指定の宛先へ送信します
func (s *MailService) SendDraft(ctx context.Context, draft *models.ExcuseDraft, toName, toEmail string) error {
	if s.apiKey == "" {
		logger.Logger.Error("SendGridのAPIキーが設定されていません")
		return models.NewConfigurationError("SENDGRID_API_KEY not configured")
	}

	if s.fromAddr == "" {
		logger.Logger.Error("送信元アドレスが設定されていません")
		return models.NewConfigurationError("EMAIL_FROM_ADDRESS not configured")
	}

	// メール送信の準備
	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(toName, toEmail)

	plainTextContent := draft.Body
	htmlContent := createDraftHTMLContent(draft)

	message := mail.NewSingleEmail(from, draft.Subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(s.apiKey)
	if s.host != "" {
		client.Request.BaseURL = s.host + "/v3/mail/send"
	}

	// メール送信
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.Logger.Error("メール送信に失敗しました",
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %v", err)
	}

	// SendGridのレスポンス検証
	if response.StatusCode >= 300 {
		logger.Logger.Error("SendGridからエラーレスポンスを受信しました",
			zap.Int("status_code", response.StatusCode),
			zap.String("response_body", response.Body),
		)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	logger.Logger.Info("言い訳メールを送信しました",
		zap.Int("status_code", response.StatusCode),
		zap.String("subject", draft.Subject),
	)

	return nil
}

func createDraftHTMLContent(draft *models.ExcuseDraft) string {
	body := html.EscapeString(draft.Body)
	body = strings.ReplaceAll(body, "\n", "<br>\n")

	return `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>` + html.EscapeString(draft.Subject) + `</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <p>` + body + `</p>
    </div>
</body>
</html>`
}
