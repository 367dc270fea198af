package classify

import (
	"context"

	"github.com/wave-app/wave/internal/utils"
)

// Service composes the remote analyzer with the offline heuristic.
// When a remote is configured and reachable its answer wins; any
// remote failure degrades silently to the heuristic so callers always
// get an answer.
type Service struct {
	remote *Remote
	local  Heuristic
}

// NewService builds the composed classifier. remote may be nil for a
// purely offline setup.
func NewService(remote *Remote) *Service {
	return &Service{remote: remote}
}

// Analyze never fails: remote errors are logged and absorbed, and the
// heuristic answers instead.
func (s *Service) Analyze(ctx context.Context, text string) (Result, error) {
	if s.remote != nil {
		res, err := s.remote.Analyze(ctx, text)
		if err == nil {
			return res, nil
		}
		utils.Debug("remote classifier unavailable, falling back to heuristic: %v", err)
	}
	return s.local.Analyze(ctx, text)
}
