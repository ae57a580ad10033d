package assistant

import (
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
)

// Responder produces assistant replies.
type Responder interface {
	Reply(text string, emergencyMode bool) (domassist.Reply, error)
}
