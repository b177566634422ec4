package generator

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ─────────── 1. Prompt ─────────── */

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt("hello transcript")

	assert.Equal(t, "Write a blog article based on this transcript:\n\nhello transcript", got)
}

func TestBuildUserPrompt_TruncatesLongTranscript(t *testing.T) {
	long := strings.Repeat("a", maxTranscriptChars+500)

	got := buildUserPrompt(long)

	assert.Contains(t, got, "(transcript truncated)")
	assert.Less(t, len(got), len(userPromptPrefix)+maxTranscriptChars+100)
}

/* ─────────── 2. Config ─────────── */

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GENERATOR_MODEL", "")
	t.Setenv("GENERATOR_MAX_TOKENS", "")
	t.Setenv("GENERATOR_TIMEOUT", "")

	cfg, err := LoadConfig("gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("GENERATOR_MODEL", "gpt-4o-mini")
	t.Setenv("GENERATOR_MAX_TOKENS", "2000")
	t.Setenv("GENERATOR_TIMEOUT", "90s")

	cfg, err := LoadConfig("gpt-3.5-turbo")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadConfig_InvalidMaxTokens(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "non-numeric", value: "abc"},
		{name: "below minimum", value: "50"},
		{name: "above maximum", value: "10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GENERATOR_MAX_TOKENS", tt.value)

			_, err := LoadConfig("gpt-3.5-turbo")
			assert.Error(t, err)
		})
	}
}

/* ─────────── 3. NoOp ─────────── */

func TestNoOp_Generate(t *testing.T) {
	n := NewNoOp()

	got, err := n.Generate(context.Background(), "short transcript")
	require.NoError(t, err)

	assert.Contains(t, got, "short transcript")
}

func TestNoOp_Generate_TruncatesLongTranscript(t *testing.T) {
	n := NewNoOp()

	got, err := n.Generate(context.Background(), strings.Repeat("x", 2000))
	require.NoError(t, err)

	assert.Contains(t, got, "...")
	assert.Less(t, len(got), 600)
}
