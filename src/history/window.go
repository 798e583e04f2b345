// Package history decides which stored conversation messages are transmitted
// to the model each turn.
package history

import (
	"fmt"

	"github.com/kota-cli/kota/src/aisdk"
)

// Policy controls transmission windowing. Both fields are runtime-mutable;
// the stored conversation is never affected.
type Policy struct {
	// MaxMessages is the cap on transmitted messages. 0 means unlimited.
	MaxMessages int `validate:"gte=0"`
	// PrefixKeep is the number of earliest non-system messages always
	// retained. Keeping the prefix byte-identical across turns keeps
	// provider-side prompt caching valid.
	PrefixKeep int `validate:"gte=0"`
}

// Select computes the transmitted subsequence of messages for one request.
// It is a read-only view, deterministic for a given input, and returns at
// most MaxMessages+1 messages (the +1 is the elision notice).
func Select(messages []*aisdk.Message, policy Policy) []*aisdk.Message {
	total := len(messages)
	if policy.MaxMessages == 0 || total <= policy.MaxMessages {
		return messages
	}

	result := make([]*aisdk.Message, 0, policy.MaxMessages+1)

	// System message plus the stable cache prefix.
	prefixEnd := 1 + policy.PrefixKeep
	if prefixEnd > total {
		prefixEnd = total
	}
	result = append(result, messages[:prefixEnd]...)

	tailCount := policy.MaxMessages - prefixEnd
	if tailCount < 0 {
		tailCount = 0
	}
	tailStart := total - tailCount
	if tailStart < prefixEnd {
		tailStart = prefixEnd
	}

	if dropped := tailStart - prefixEnd; dropped > 0 {
		result = append(result, aisdk.NewTextMessage("system", fmt.Sprintf(
			"[Note: %d earlier messages were truncated to save context. The conversation continues below.]",
			dropped)))
	}

	return append(result, messages[tailStart:]...)
}
