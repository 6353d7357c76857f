package scoring

import (
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiScorer(t *testing.T) {
	_, err := NewGeminiScorer("", "whatever")
	require.Error(t, err)

	scorer, err := NewGeminiScorer("key", "")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, DefaultModel, scorer.model)

	scorer, err = NewGeminiScorer("key", "gemini-2.5-pro")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "gemini-2.5-pro", scorer.model)
}

func TestFallback(t *testing.T) {
	result := Fallback()
	require.Equal(t, 0, result.Score)
	require.Equal(t, FallbackReason, result.Reason)
}

func TestServiceErrorUnwrap(t *testing.T) {
	inner := errors.New("quota exceeded")
	err := &ServiceError{Err: inner}
	require.True(t, errors.Is(err, inner))
	require.Contains(t, err.Error(), "quota exceeded")
}

func TestFirstText(t *testing.T) {
	require.Equal(t, "", firstText(nil))
	require.Equal(t, "", firstText(&genai.GenerateContentResponse{}))

	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"score":90,"reason":"ok"}`),
			}}},
		},
	}
	require.Equal(t, `{"score":90,"reason":"ok"}`, firstText(res))
}
