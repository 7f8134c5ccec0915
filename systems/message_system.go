package systems

import "sync"

// MessageLog stores viewer messages. It is safe for concurrent use because the
// generator logs from a background goroutine while the viewer draws.
type MessageLog struct {
	mu          sync.Mutex
	messages    []ColoredMessage
	MaxMessages int
}

var (
	globalMessageLog *MessageLog
	messageLogOnce   sync.Once
)

// GetMessageLog returns the global message log instance
func GetMessageLog() *MessageLog {
	messageLogOnce.Do(func() {
		globalMessageLog = NewMessageLog()
	})
	return globalMessageLog
}

// NewMessageLog creates a new message log
func NewMessageLog() *MessageLog {
	return &MessageLog{
		MaxMessages: 100, // Store the last 100 messages
	}
}

// Add adds a normal message to the log
func (ml *MessageLog) Add(message string) {
	ml.AddTyped(message, MessageTypeNormal)
}

// AddTyped adds a message with the given type
func (ml *MessageLog) AddTyped(message string, t MessageType) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, ColoredMessage{Text: message, Type: t})

	// Truncate if we have too many messages
	if ml.MaxMessages > 0 && len(ml.messages) > ml.MaxMessages {
		ml.messages = ml.messages[len(ml.messages)-ml.MaxMessages:]
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []ColoredMessage {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	n = max(0, min(n, len(ml.messages)))

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.messages[len(ml.messages)-1-i]
	}

	return result
}

// Messages returns a copy of every stored message, oldest first
func (ml *MessageLog) Messages() []ColoredMessage {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	out := make([]ColoredMessage, len(ml.messages))
	copy(out, ml.messages)
	return out
}

// Len returns the number of stored messages
func (ml *MessageLog) Len() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.messages = nil
}
