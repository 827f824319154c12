package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("  key  ", "")
	if c.APIKey != "key" {
		t.Errorf("expected trimmed key, got %q", c.APIKey)
	}
	if c.Model != DefaultModel {
		t.Errorf("expected default model, got %q", c.Model)
	}
	if NewClient("k", "gemini-1.5-pro").Model != "gemini-1.5-pro" {
		t.Error("expected explicit model to be kept")
	}
}

func TestFirstText(t *testing.T) {
	if got := firstText(nil); got != "" {
		t.Errorf("expected empty for nil response, got %q", got)
	}

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				&genai.Blob{MIMEType: "image/png"},
				genai.Text(`{"calories":1}`),
				genai.Text("ignored"),
			}}},
		},
	}
	if got := firstText(resp); got != `{"calories":1}` {
		t.Errorf("unexpected text %q", got)
	}
}
