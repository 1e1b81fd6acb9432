package models

import "encoding/json"

// ChatMessage は推論エンドポイントへ渡す1件のメッセージを定義します
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DataframeRecord はdataframe_records形式の1レコードを定義します
type DataframeRecord struct {
	Messages []ChatMessage `json:"messages"`
}

// InvocationPayload はモデルサービングエンドポイントへの送信エンベロープです
type InvocationPayload struct {
	DataframeRecords []DataframeRecord `json:"dataframe_records"`
}

// NewInvocationPayload はプロンプトを単一のuserメッセージとして包んだ
// 送信エンベロープを生成します
func NewInvocationPayload(prompt string) *InvocationPayload {
	return &InvocationPayload{
		DataframeRecords: []DataframeRecord{
			{
				Messages: []ChatMessage{
					{Role: "user", Content: prompt},
				},
			},
		},
	}
}

// PredictionResponse は推論エンドポイントからの応答エンベロープです。
// predictions要素の中身はモデルごとに揺れるため、生のJSONのまま保持します。
type PredictionResponse struct {
	Predictions []json.RawMessage `json:"predictions"`
}
