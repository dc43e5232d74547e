package scanner

import (
	"context"

	"go.trai.ch/nvshader/internal/engine/classifier"
)

// MeasureHook replaces unit measurement for tests. It reports size and count only.
type MeasureHook func(ctx context.Context, cand classifier.Candidate) (int64, error)

// SetMeasure swaps the measurement function used by s.
func SetMeasure(s *Scanner, hook MeasureHook) {
	s.measure = func(ctx context.Context, _ *classifier.Classifier, cand classifier.Candidate) (measurement, error) {
		size, err := hook(ctx, cand)
		return measurement{size: size}, err
	}
}
