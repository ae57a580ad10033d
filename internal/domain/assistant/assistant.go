// Package assistant produces the canned replies of the help chat.
// Replies are chosen by keyword; there is no language model behind them.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/kailas-cloud/safeexplore/internal/domain"
)

// MaxMessageLength caps an incoming message, in bytes.
const MaxMessageLength = 2000

// Topic is the subject a message was classified under.
type Topic string

// Topics, in matching priority order.
const (
	TopicVisa      Topic = "visa"
	TopicEmergency Topic = "emergency"
	TopicCulture   Topic = "culture"
	TopicSafety    Topic = "safety"
	TopicGeneral   Topic = "general"
)

var keywords = []struct {
	topic Topic
	words []string
}{
	{TopicVisa, []string{"visa", "document"}},
	{TopicEmergency, []string{"emergency", "help", "urgent"}},
	{TopicCulture, []string{"culture", "custom", "etiquette"}},
	{TopicSafety, []string{"safety", "safe", "danger"}},
}

// Classify returns the first topic whose keyword occurs in text, ignoring case.
func Classify(text string) Topic {
	folded := cases.Fold().String(text)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(folded, w) {
				return k.topic
			}
		}
	}
	return TopicGeneral
}

// Kind marks how a reply is rendered.
type Kind string

// Reply kinds.
const (
	KindNormal    Kind = "normal"
	KindEmergency Kind = "emergency"
)

// QuickAction is a one-tap follow-up offered with a reply.
type QuickAction struct {
	ID     string
	Label  string
	Action string
}

// Reply is an assistant message.
type Reply struct {
	ID           uuid.UUID
	Topic        Topic
	Kind         Kind
	Content      string
	QuickActions []QuickAction
	Suggestions  []string
	CreatedAt    time.Time
}

// Responder answers messages from the canned reply table.
type Responder struct {
	newID func() uuid.UUID
	now   func() time.Time
}

// Option configures a Responder.
type Option func(*Responder)

// WithClock overrides the reply timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Responder) { r.now = now }
}

// WithIDGenerator overrides reply id generation.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(r *Responder) { r.newID = gen }
}

// New creates a Responder with random UUIDs and the wall clock.
func New(opts ...Option) *Responder {
	r := &Responder{newID: uuid.New, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Reply answers text. emergencyMode renders every reply as an emergency.
func (r *Responder) Reply(text string, emergencyMode bool) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, fmt.Errorf("%w: message is empty", domain.ErrInvalidQuery)
	}
	if len(text) > MaxMessageLength {
		return Reply{}, fmt.Errorf("%w: message too long (max %d bytes)", domain.ErrInvalidQuery, MaxMessageLength)
	}

	topic := Classify(text)
	c := canned[topic]

	content := c.content
	if topic == TopicGeneral {
		content = fmt.Sprintf(c.content, text)
	}

	kind := KindNormal
	if c.emergency || emergencyMode {
		kind = KindEmergency
	}

	return Reply{
		ID:           r.newID(),
		Topic:        topic,
		Kind:         kind,
		Content:      content,
		QuickActions: append([]QuickAction(nil), c.actions...),
		Suggestions:  Suggestions(topic),
		CreatedAt:    r.now(),
	}, nil
}

// Suggestions returns follow-up questions for topic; general gets the welcome set.
func Suggestions(topic Topic) []string {
	set, ok := suggestions[topic]
	if !ok {
		set = welcome
	}
	return append([]string(nil), set...)
}

// Welcome returns the questions offered before the first message.
func Welcome() []string { return append([]string(nil), welcome...) }

// PromptFor returns the message a quick action sends on the user's behalf.
func PromptFor(action string) (string, bool) {
	p, ok := actionPrompts[action]
	return p, ok
}
