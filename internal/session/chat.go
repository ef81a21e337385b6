package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deepretrieve/deepretrieve/internal/api"
)

// Role identifies the author of a transcript entry.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return "assistant"
}

// Message is one transcript entry. The transcript is append-only: entries
// are never mutated or reordered after insertion. Failures become their own
// assistant entries rather than patches to the user message.
type Message struct {
	ID      string
	Role    Role
	Content string
	Sources []api.SourceRef
	UsedWeb bool
}

// apologyTemplate wraps the error text of a failed query into a
// conversational assistant message.
const apologyTemplate = "I'm sorry, I ran into a problem answering that: %s. Please try again."

// Querier is the slice of the backend client the chat session needs.
type Querier interface {
	Query(ctx context.Context, query string, topK int) (*api.QueryResponse, error)
}

// ChatSession owns the conversation transcript and the composing indicator.
// Sends are serialized: a new Send is a no-op while a response is pending,
// so responses can never be misattributed across interleaved requests.
type ChatSession struct {
	mu        sync.Mutex
	messages  []Message
	composing bool

	client  Querier
	relay   *SourcesRelay
	topK    int
	timeout time.Duration
}

// NewChatSession wires a chat controller. Each successful response is also
// published to relay for the sources panel.
func NewChatSession(client Querier, relay *SourcesRelay, topK int, timeout time.Duration) *ChatSession {
	return &ChatSession{
		client:  client,
		relay:   relay,
		topK:    topK,
		timeout: timeout,
	}
}

// Send submits a question. Blank input and sends issued while composing are
// no-ops. The user message is appended synchronously; the call then blocks
// until the backend answers or fails, appending exactly one assistant
// message either way. Returns whether a send actually happened.
func (c *ChatSession) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	if c.composing {
		c.mu.Unlock()
		return false
	}
	c.messages = append(c.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleUser,
		Content: text,
	})
	c.composing = true
	c.mu.Unlock()

	queryCtx, cancel := api.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Query(queryCtx, text, c.topK)

	c.mu.Lock()
	c.composing = false
	if err != nil {
		c.messages = append(c.messages, Message{
			ID:      uuid.NewString(),
			Role:    RoleAssistant,
			Content: fmt.Sprintf(apologyTemplate, err),
			Sources: []api.SourceRef{},
		})
		c.mu.Unlock()
		return true
	}

	sources := resp.Sources
	if sources == nil {
		sources = []api.SourceRef{}
	}
	c.messages = append(c.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: resp.Answer,
		Sources: sources,
		UsedWeb: resp.UsedWebSearch,
	})
	c.mu.Unlock()

	c.relay.Publish(sources, resp.UsedWebSearch)
	return true
}

// Messages returns a snapshot of the transcript in append order.
func (c *ChatSession) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Composing reports whether a response is pending.
func (c *ChatSession) Composing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composing
}

// Len returns the transcript length.
func (c *ChatSession) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}
