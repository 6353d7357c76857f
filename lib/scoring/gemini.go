package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"
)

var tracer = otel.Tracer("lib/scoring")

const DefaultModel = "gemini-2.5-flash-lite"

const systemInstruction = "You are an assistant helping teacher score assignment according to requirements. Score is 0-100. Keep reason simple."

// GeminiScorer scores submissions with a Gemini model constrained to a
// {score, reason} JSON response schema. The API key is injected at
// construction, never read from ambient globals.
type GeminiScorer struct {
	apiKey string
	model  string
}

func NewGeminiScorer(apiKey, model string) (*GeminiScorer, error) {
	if apiKey == "" {
		return nil, errors.New("scoring: api key is empty")
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiScorer{apiKey: apiKey, model: model}, nil
}

var resultSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":  {Type: genai.TypeInteger},
		"reason": {Type: genai.TypeString},
	},
	Required: []string{"score", "reason"},
}

func (g *GeminiScorer) Score(ctx context.Context, req Request) (Result, error) {
	ctx, span := tracer.Start(ctx, "gemini:Score")
	defer span.End()

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create client")
		return Result{}, &ServiceError{Err: err}
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   resultSchema,
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, &ServiceError{Err: err}
	}

	res, err := model.GenerateContent(ctx, genai.Text(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return Result{}, &ServiceError{Err: err}
	}

	text := firstText(res)
	if text == "" {
		span.SetStatus(codes.Error, "empty response")
		return Result{}, &ServiceError{Err: errors.New("empty response")}
	}

	var out Result
	err = json.Unmarshal([]byte(text), &out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-conforming response")
		return Result{}, &ServiceError{Err: fmt.Errorf("non-conforming response: %w", err)}
	}

	return out, nil
}

func firstText(res *genai.GenerateContentResponse) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
