package aisdk

// Conversation is the full stored message log for a session. Index 0 is
// always the system message; it is never evicted or reordered. Only Append
// and Clear mutate it, and the process is single-threaded, so no lock is
// needed.
type Conversation struct {
	Messages []*Message
}

// NewConversation starts a conversation seeded with the system prompt.
func NewConversation(systemPrompt string) *Conversation {
	return &Conversation{
		Messages: []*Message{NewTextMessage("system", systemPrompt)},
	}
}

// Append adds messages to the end of the log.
func (c *Conversation) Append(msgs ...*Message) {
	c.Messages = append(c.Messages, msgs...)
}

// Clear truncates the log back to just the system message.
func (c *Conversation) Clear() {
	c.Messages = c.Messages[:1]
}

// Len returns the number of stored messages, including the system message.
func (c *Conversation) Len() int {
	return len(c.Messages)
}
