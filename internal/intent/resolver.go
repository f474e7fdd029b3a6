// File: internal/intent/resolver.go
package intent

import (
	"context"

	"go.uber.org/zap"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

// Resolver implements the two-stage intent extraction: a cheap keyword pass,
// then a delegated NLU call only when the keyword confidence falls below the
// threshold. The two results are never merged; whichever stage runs last wins.
type Resolver struct {
	threshold float64
	nlu       Extractor // nil means keyword-only mode
	logger    *zap.Logger
}

// NewResolver builds a resolver. Pass a nil extractor to disable the NLU stage.
func NewResolver(threshold float64, nlu Extractor, logger *zap.Logger) *Resolver {
	return &Resolver{
		threshold: threshold,
		nlu:       nlu,
		logger:    logger.Named("resolver"),
	}
}

// Resolve turns an utterance into a structured intent. NLU failures degrade
// to an empty intent rather than surfacing an error.
func (r *Resolver) Resolve(ctx context.Context, text string) schemas.Intent {
	keyword := ExtractKeywords(text)
	if keyword.Confidence >= r.threshold || r.nlu == nil {
		return keyword
	}

	r.logger.Debug("Keyword confidence below threshold, delegating to NLU",
		zap.Float64("confidence", keyword.Confidence),
		zap.Float64("threshold", r.threshold))

	resolved, err := r.nlu.Extract(ctx, text)
	if err != nil {
		r.logger.Warn("NLU extraction failed", zap.Error(err))
		return schemas.Intent{RawText: text}
	}
	return resolved
}
