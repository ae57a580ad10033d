// Package assistant serves the help chat.
package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/domain"
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	"github.com/kailas-cloud/safeexplore/internal/logger"
)

// Service answers chat messages and quick actions.
type Service struct {
	responder Responder
}

// New creates an assistant service.
func New(responder Responder) *Service {
	return &Service{responder: responder}
}

// Ask answers a free-text message.
func (s *Service) Ask(ctx context.Context, text string, emergencyMode bool) (domassist.Reply, error) {
	r, err := s.responder.Reply(text, emergencyMode)
	if err != nil {
		return domassist.Reply{}, fmt.Errorf("reply: %w", err)
	}
	logger.FromContext(ctx).Debug("assistant reply",
		zap.String("message_id", r.ID.String()),
		zap.String("topic", string(r.Topic)),
		zap.String("kind", string(r.Kind)),
	)
	return r, nil
}

// Act answers a quick action by sending its prompt as the message.
func (s *Service) Act(ctx context.Context, action string, emergencyMode bool) (domassist.Reply, error) {
	prompt, ok := domassist.PromptFor(action)
	if !ok {
		return domassist.Reply{}, fmt.Errorf("quick action %q: %w", action, domain.ErrNotFound)
	}
	return s.Ask(ctx, prompt, emergencyMode)
}

// Welcome returns the questions offered before the first message.
func (s *Service) Welcome() []string {
	return domassist.Welcome()
}
