package errors

import (
	"sync"
	"time"
)

const maxMessages = 50

// MessageType is the severity of a message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeSuccess:
		return "success"
	default:
		return "info"
	}
}

// Message is one status line entry.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler keeps recent messages for the status line. Each message stays
// visible for the handler's TTL.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	ttl       time.Duration
	now       func() time.Time
	onMessage func(msg Message)
}

// NewTUIHandler returns a handler whose messages expire after ttl. onMessage,
// when set, is called with each new message.
func NewTUIHandler(ttl time.Duration, onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{ttl: ttl, now: time.Now, onMessage: onMessage}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, typ MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: typ, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if len(h.messages) > maxMessages {
		h.messages = h.messages[len(h.messages)-maxMessages:]
	}
	onMessage := h.onMessage
	h.mu.Unlock()

	if onMessage != nil {
		onMessage(msg)
	}
}

// Current returns the latest message while it is still visible.
func (h *TUIHandler) Current() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	latest := h.messages[len(h.messages)-1]
	if h.ttl > 0 && h.now().Sub(latest.Timestamp) >= h.ttl {
		return Message{}, false
	}
	return latest, true
}

// TTL returns how long a message stays visible.
func (h *TUIHandler) TTL() time.Duration { return h.ttl }

// All returns the retained messages, oldest first.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Clear drops every message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	h.messages = nil
	h.mu.Unlock()
}
