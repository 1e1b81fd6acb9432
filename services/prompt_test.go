package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"excusegen/models"
	"excusegen/services"
)

func TestBuildExcusePrompt_ContainsAllFields(t *testing.T) {
	req := &models.ExcuseRequest{
		Category:      "running-late",
		Tone:          "apologetic",
		Seriousness:   3,
		RecipientName: "Ms. Tanaka",
		SenderName:    "Suzuki",
		EtaWhen:       "30 minutes",
	}

	prompt := services.BuildExcusePrompt(req)

	assert.Contains(t, prompt, "- Category: running-late")
	assert.Contains(t, prompt, "- Tone: apologetic")
	assert.Contains(t, prompt, "- Seriousness Level: 3/5 (1=very silly, 5=serious)")
	assert.Contains(t, prompt, "- Recipient: Ms. Tanaka")
	assert.Contains(t, prompt, "- Sender: Suzuki")
	assert.Contains(t, prompt, "- ETA/When: 30 minutes")
}

func TestBuildExcusePrompt_Deterministic(t *testing.T) {
	req := &models.ExcuseRequest{
		Category:      "sick-day",
		Tone:          "formal",
		Seriousness:   5,
		RecipientName: "Dr. Yamada",
		SenderName:    "Sato",
		EtaWhen:       "tomorrow morning",
	}

	first := services.BuildExcusePrompt(req)
	second := services.BuildExcusePrompt(req)

	assert.Equal(t, first, second, "same request must produce the same prompt")
}

func TestBuildExcusePrompt_JSONInstruction(t *testing.T) {
	req := &models.ExcuseRequest{
		Category:      "missed-deadline",
		Tone:          "casual",
		Seriousness:   1,
		RecipientName: "Team",
		SenderName:    "Kei",
		EtaWhen:       "end of week",
	}

	prompt := services.BuildExcusePrompt(req)

	assert.Contains(t, prompt, `Generate a JSON response with "subject" and "body" fields.`)
	assert.Contains(t, prompt, "Respond ONLY with valid JSON in this format:")
	// JSON例の改行はエスケープ表記のままであること
	assert.Contains(t, prompt, `{"subject": "Subject Line", "body": "Dear [Recipient],\n\nEmail body content...\n\nBest regards,\n[Sender]"}`)
}

func TestBuildExcusePrompt_DiffersPerRequest(t *testing.T) {
	base := models.ExcuseRequest{
		Category:      "running-late",
		Tone:          "apologetic",
		Seriousness:   3,
		RecipientName: "Ms. Tanaka",
		SenderName:    "Suzuki",
		EtaWhen:       "30 minutes",
	}

	other := base
	other.Seriousness = 4

	assert.NotEqual(t,
		services.BuildExcusePrompt(&base),
		services.BuildExcusePrompt(&other),
		"different requests must produce different prompts")
}
