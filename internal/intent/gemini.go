// File: internal/intent/gemini.go
package intent

import (
	"context"
	"fmt"
	"strings"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/voxarm/voxarm-cli/api/schemas"
	"github.com/voxarm/voxarm-cli/internal/config"
)

// Extractor is the delegated NLU stage of the resolver. Implementations
// return an error for transport or parse failures; the resolver converts any
// error into an empty intent, so nothing raises past the service boundary.
type Extractor interface {
	Extract(ctx context.Context, text string) (schemas.Intent, error)
}

const nluPrompt = `Extract the ACTION and OBJECT from this command: %q

Actions: pick, place, move, show, stop
Objects: Any graspable object mentioned

Return ONLY JSON format:
{"action": "action_name", "object": "object_name", "confidence": 0.0-1.0}

Example:
Input: "Could you grab that bottle?"
Output: {"action": "pick", "object": "bottle", "confidence": 0.9}`

// GeminiExtractor delegates intent extraction to the Gemini API.
type GeminiExtractor struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *zap.Logger
}

var _ Extractor = (*GeminiExtractor)(nil)

// NewGeminiExtractor builds the Gemini-backed extractor. The per-minute rate
// cap protects the external quota when the keyword stage keeps missing.
func NewGeminiExtractor(ctx context.Context, cfg config.SpeechConfig, logger *zap.Logger) (*GeminiExtractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("speech.api_key is required for the NLU extractor")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	rps := cfg.RequestsPerMinute / 60.0
	if rps <= 0 {
		rps = 0.5
	}

	return &GeminiExtractor{
		client:  client,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger.Named("nlu"),
	}, nil
}

// Extract sends the utterance to Gemini and parses its JSON reply.
func (g *GeminiExtractor) Extract(ctx context.Context, text string) (schemas.Intent, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return schemas.Intent{}, fmt.Errorf("rate limiter aborted: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(fmt.Sprintf(nluPrompt, text)), nil)
	if err != nil {
		return schemas.Intent{}, fmt.Errorf("gemini call failed: %w", err)
	}

	intent, err := parseIntentJSON(resp.Text())
	if err != nil {
		g.logger.Warn("NLU returned unparsable output", zap.Error(err))
		return schemas.Intent{}, err
	}

	intent.RawText = text
	return intent, nil
}

// nluReply is the fixed small JSON shape the model is prompted to emit.
type nluReply struct {
	Action     string  `json:"action"`
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// parseIntentJSON strips markdown code fences and decodes the model reply.
func parseIntentJSON(raw string) (schemas.Intent, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var reply nluReply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return schemas.Intent{}, fmt.Errorf("malformed NLU reply: %w", err)
	}

	return schemas.Intent{
		Action:     schemas.Action(strings.ToLower(strings.TrimSpace(reply.Action))),
		Object:     strings.ToLower(strings.TrimSpace(reply.Object)),
		Confidence: reply.Confidence,
	}, nil
}
