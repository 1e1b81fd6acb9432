package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"excusegen/logger"
	"excusegen/models"
)

// defaultSubject は件名を抽出できなかった場合に使用するプレースホルダです
const defaultSubject = "Excuse Email"

// predictionShape はprediction要素の既知のバリエーションをまとめた構造です。
// content / text はキーの有無を区別するためポインタで受けます。
type predictionShape struct {
	Candidates []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"candidates"`
	Content *string `json:"content"`
	Text    *string `json:"text"`
}

// NormalizeResponse は推論エンドポイントの応答エンベロープから件名と本文を
// 抽出します。predictionsが欠落または空の場合のみエラーを返し、それ以外の
// 形式の揺れはフォールバックで吸収して必ず結果を返します
func NormalizeResponse(resp *models.PredictionResponse) (*models.ExcuseDraft, error) {
	if resp == nil || len(resp.Predictions) == 0 {
		return nil, models.NewInvalidShapeError(fmt.Errorf("predictions field is missing or empty"))
	}

	content := extractContent(resp.Predictions[0])
	return parseDraft(content), nil
}

// extractContent はprediction要素からモデルの出力テキストを取り出します。
// candidates、content、textの順に評価し、どれにも当てはまらない場合は
// 要素全体を文字列のまま返します
func extractContent(raw json.RawMessage) string {
	var shape predictionShape
	if err := json.Unmarshal(raw, &shape); err == nil {
		if len(shape.Candidates) > 0 && shape.Candidates[0].Message.Content != "" {
			return shape.Candidates[0].Message.Content
		}
		if shape.Content != nil {
			return *shape.Content
		}
		if shape.Text != nil {
			return *shape.Text
		}
		return string(raw)
	}

	// オブジェクトではないprediction（文字列・数値など）
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}
	return string(raw)
}

// parseDraft はモデルの出力テキストをExcuseDraftへ変換します。
// JSONオブジェクトとして解釈できる場合はsubject/bodyキーを優先し、
// できない場合は行分割のフォールバックを使用します
func parseDraft(content string) *models.ExcuseDraft {
	var parsed struct {
		Subject *string `json:"subject"`
		Body    *string `json:"body"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err == nil && strings.HasPrefix(strings.TrimSpace(content), "{") {
		subject := defaultSubject
		if parsed.Subject != nil && *parsed.Subject != "" {
			subject = *parsed.Subject
		}
		body := content
		if parsed.Body != nil && *parsed.Body != "" {
			body = *parsed.Body
		}
		return &models.ExcuseDraft{Subject: subject, Body: body}
	}

	logger.Logger.Debug("モデル出力をJSONとして解釈できなかったため行分割します")
	return splitDraft(content)
}

// splitDraft は出力テキストを1行目とそれ以降に分けて件名と本文にします
func splitDraft(content string) *models.ExcuseDraft {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	subject := lines[0]
	if subject == "" {
		subject = defaultSubject
	}

	body := content
	if len(lines) > 1 {
		body = strings.Join(lines[1:], "\n")
	}
	if strings.TrimSpace(body) == "" {
		body = subject
	}

	return &models.ExcuseDraft{Subject: subject, Body: body}
}
