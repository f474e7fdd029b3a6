// File: internal/intent/service.go
package intent

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

const agentName = "intent"

// Service is the speech boundary: it blocks for one utterance, resolves it to
// a structured intent and wraps the outcome in an envelope.
type Service struct {
	recognizer Recognizer
	resolver   *Resolver
	window     time.Duration
	logger     *zap.Logger
}

// NewService wires the intent service. The window bounds each listen call.
func NewService(recognizer Recognizer, resolver *Resolver, window time.Duration, logger *zap.Logger) *Service {
	return &Service{
		recognizer: recognizer,
		resolver:   resolver,
		window:     window,
		logger:     logger.Named(agentName),
	}
}

// GetCommand blocks until one user command is captured and resolved. All
// capture and NLU failures surface as error envelopes, never as raw errors.
func (s *Service) GetCommand(ctx context.Context) schemas.IntentResult {
	listenCtx, cancel := context.WithTimeout(ctx, s.window)
	defer cancel()

	text, err := s.recognizer.Recognize(listenCtx)
	if err != nil {
		return s.captureError(err)
	}
	text = strings.ToLower(text)

	resolved := s.resolver.Resolve(ctx, text)
	s.logger.Info("Command resolved",
		zap.String("action", string(resolved.Action)),
		zap.String("object", resolved.Object),
		zap.Float64("confidence", resolved.Confidence))

	env := schemas.NewEnvelope(agentName, schemas.MessageIntent)
	if resolved.Action == schemas.ActionNone {
		env.Status = schemas.StatusError
		env.Error = "could not determine action"
	}

	return schemas.IntentResult{Envelope: env, Intent: resolved}
}

func (s *Service) captureError(err error) schemas.IntentResult {
	code := schemas.CodeUnavailable
	switch {
	case errors.Is(err, ErrInputClosed):
		code = schemas.CodeInputClosed
	case errors.Is(err, ErrNoSpeech), errors.Is(err, context.DeadlineExceeded):
		code = schemas.CodeTimeout
	}
	s.logger.Warn("Speech capture failed", zap.Error(err))
	return schemas.IntentResult{
		Envelope: schemas.NewErrorEnvelope(agentName, schemas.MessageIntent, code, err.Error()),
	}
}
