package safeexplore

import (
	"context"
	"fmt"

	assistantuc "github.com/kailas-cloud/safeexplore/internal/usecase/assistant"
)

// Assistant is the help chat. Replies come from a canned table chosen by keyword.
type Assistant struct {
	svc       *assistantuc.Service
	client    *Client
	emergency bool
}

// Emergency renders every following reply as an emergency.
func (a *Assistant) Emergency(on bool) *Assistant {
	a.emergency = on
	return a
}

// Ask answers a free-text message.
func (a *Assistant) Ask(ctx context.Context, text string) (Reply, error) {
	r, err := a.svc.Ask(a.client.ctx(ctx), text, a.emergency)
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: %w", err)
	}
	return r, nil
}

// Act answers a quick action offered with an earlier reply.
func (a *Assistant) Act(ctx context.Context, action string) (Reply, error) {
	r, err := a.svc.Act(a.client.ctx(ctx), action, a.emergency)
	if err != nil {
		return Reply{}, fmt.Errorf("assistant: %w", err)
	}
	return r, nil
}

// Welcome returns the questions offered before the first message.
func (a *Assistant) Welcome() []string {
	return a.svc.Welcome()
}
