// Package chat serves the live chat widget over a websocket. The agent side
// is simulated: every visitor message is answered with a canned reply after a
// typing delay.
package chat

import (
	"context"
	"strings"
	"time"
)

// Frame types exchanged with the widget.
const (
	FrameHello   = "hello"
	FrameStart   = "start"
	FrameMessage = "message"
	FrameTyping  = "typing"
	FrameError   = "error"
)

// Senders.
const (
	SenderUser  = "user"
	SenderAgent = "agent"
)

// DefaultTypingDelay is how long the agent "types" before replying.
const DefaultTypingDelay = 2 * time.Second

const maxMessageLength = 2000

// Frame is one JSON message on the socket.
type Frame struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	Sender    string `json:"sender,omitempty"`
	Text      string `json:"text,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Typing    *bool  `json:"typing,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
}

// typingFrame switches the agent's typing indicator on or off.
func typingFrame(on bool) Frame {
	return Frame{Type: FrameTyping, Sender: SenderAgent, Typing: &on}
}

// Agent produces replies to visitor messages.
type Agent interface {
	Reply(ctx context.Context, lang, text string) (string, error)
}

// CannedAgent answers every message with the same localized text.
type CannedAgent struct {
	Text func(lang string) string
}

func (a CannedAgent) Reply(_ context.Context, lang, _ string) (string, error) {
	if a.Text == nil {
		return "Thanks for your message. An agent will be with you shortly.", nil
	}
	return a.Text(lang), nil
}

// validateStart checks the pre-chat form.
func validateStart(f Frame) string {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return "name is required"
	case !strings.Contains(f.Email, "@"):
		return "a valid email is required"
	case len(f.Text) > maxMessageLength:
		return "message too long"
	}
	return ""
}
