// Package gemini implements relevance arbitration with Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/akash-new/reviewscout"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Arbiter implements reviewscout.Arbiter at compile time.
var _ reviewscout.Arbiter = (*Arbiter)(nil)

// Arbiter implements reviewscout.Arbiter using Google Gemini.
type Arbiter struct {
	client *genai.Client
	model  string
}

// NewArbiter creates a new Arbiter. An empty model selects DefaultModel.
func NewArbiter(client *genai.Client, model string) *Arbiter {
	if model == "" {
		model = DefaultModel
	}
	return &Arbiter{client: client, model: model}
}

// Arbitrate sends prompt as a single user turn and returns the model's text.
func (a *Arbiter) Arbitrate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", reviewscout.Errorf(reviewscout.EINVALID, "prompt required")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", reviewscout.Errorf(reviewscout.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for arbitration calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You review customer feedback for a training company. Decide whether the given text is about that company. Reply with yes or no.",
			}},
		},
		Temperature: &temp,
	}
}
