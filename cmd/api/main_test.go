package main

import (
	"testing"

	"github.com/bryanwahyu/macro-estimator/internal/config"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/gemini"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/ollama"
	"github.com/bryanwahyu/macro-estimator/internal/infra/ai/openai"
)

func TestNewCompleter(t *testing.T) {
	testCases := []struct {
		provider string
		check    func(any) bool
	}{
		{config.ProviderOpenAI, func(c any) bool { _, ok := c.(*openai.Client); return ok }},
		{config.ProviderGemini, func(c any) bool { _, ok := c.(*gemini.Client); return ok }},
		{config.ProviderOllama, func(c any) bool { _, ok := c.(*ollama.Client); return ok }},
	}
	for _, tc := range testCases {
		cfg := config.Default()
		cfg.LLM.Provider = tc.provider

		c, err := newCompleter(cfg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.provider, err)
		}
		if !tc.check(c) {
			t.Errorf("%s: unexpected completer type %T", tc.provider, c)
		}
	}

	cfg := config.Default()
	cfg.LLM.Provider = "bard"
	if _, err := newCompleter(cfg); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewCompleter_SampleConfigUsesProviderDefaults(t *testing.T) {
	testCases := []struct {
		provider  string
		wantModel string
		model     func(any) string
	}{
		{config.ProviderOpenAI, openai.DefaultModel, func(c any) string { return c.(*openai.Client).Model }},
		{config.ProviderGemini, gemini.DefaultModel, func(c any) string { return c.(*gemini.Client).Model }},
		{config.ProviderOllama, "", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.provider, func(t *testing.T) {
			t.Setenv("LLM_PROVIDER", tc.provider)
			t.Setenv("LLM_MODEL", "")

			cfg, err := config.Load("../../config.example.yaml")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.LLM.Model != "" {
				t.Fatalf("expected sample config to leave model empty, got %q", cfg.LLM.Model)
			}
			c, err := newCompleter(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.model != nil {
				if got := tc.model(c); got != tc.wantModel {
					t.Errorf("expected model %q, got %q", tc.wantModel, got)
				}
			}
		})
	}
}
