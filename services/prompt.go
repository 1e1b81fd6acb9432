package services

import (
	"fmt"

	"excusegen/models"
)

// excusePromptTemplate は言い訳メール生成用のプロンプトテンプレートです。
// 末尾のJSON例の \n はエスケープ表記のままモデルへ渡します。
const excusePromptTemplate = `
You are an AI assistant that generates professional excuse emails. Generate a JSON response with "subject" and "body" fields.

Context:
- Category: %s
- Tone: %s
- Seriousness Level: %d/5 (1=very silly, 5=serious)
- Recipient: %s
- Sender: %s
- ETA/When: %s

Generate an email with:
1. A professional subject line
2. A complete email body with greeting, apology/excuse, reason, next step, and sign-off
3. Match the tone and seriousness level appropriately

Respond ONLY with valid JSON in this format:
{"subject": "Subject Line", "body": "Dear [Recipient],\n\nEmail body content...\n\nBest regards,\n[Sender]"}
`

// BuildExcusePrompt はリクエスト内容からプロンプトを組み立てます。
// 同じリクエストからは常に同じプロンプトが生成されます
func BuildExcusePrompt(req *models.ExcuseRequest) string {
	return fmt.Sprintf(excusePromptTemplate,
		req.Category,
		req.Tone,
		req.Seriousness,
		req.RecipientName,
		req.SenderName,
		req.EtaWhen,
	)
}
