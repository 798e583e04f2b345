package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kota-cli/kota/src/aisdk"
)

// makeConversation builds a system message followed by n-1 numbered user
// messages, so tests can identify exactly which messages survive.
func makeConversation(n int) []*aisdk.Message {
	msgs := make([]*aisdk.Message, 0, n)
	msgs = append(msgs, aisdk.NewTextMessage("system", "system prompt"))
	for i := 1; i < n; i++ {
		msgs = append(msgs, aisdk.NewTextMessage("user", fmt.Sprintf("message %d", i)))
	}
	return msgs
}

func TestSelectPassthrough(t *testing.T) {
	msgs := makeConversation(50)

	t.Run("unlimited policy", func(t *testing.T) {
		got := Select(msgs, Policy{MaxMessages: 0, PrefixKeep: 2})
		assert.Len(t, got, 50)
		assert.Equal(t, msgs, got)
	})

	t.Run("under the cap", func(t *testing.T) {
		got := Select(msgs, Policy{MaxMessages: 50, PrefixKeep: 2})
		assert.Equal(t, msgs, got)
	})

	t.Run("exactly at the cap", func(t *testing.T) {
		got := Select(msgs, Policy{MaxMessages: 50, PrefixKeep: 0})
		assert.Equal(t, msgs, got)
	})
}

func TestSelectTruncation(t *testing.T) {
	// 100 messages with {max 10, prefix 2}: system + 2 earliest + notice +
	// 7 most recent = 11 total, 90 elided.
	msgs := makeConversation(100)
	got := Select(msgs, Policy{MaxMessages: 10, PrefixKeep: 2})

	require.Len(t, got, 11)
	assert.Equal(t, "system prompt", got[0].Text())
	assert.Equal(t, "message 1", got[1].Text())
	assert.Equal(t, "message 2", got[2].Text())

	notice := got[3]
	assert.Equal(t, "system", notice.Role)
	assert.Contains(t, notice.Text(), "90 earlier messages were truncated")

	assert.Equal(t, "message 93", got[4].Text())
	assert.Equal(t, "message 99", got[10].Text())
}

func TestSelectAlwaysKeepsSystemMessage(t *testing.T) {
	msgs := makeConversation(40)

	for _, policy := range []Policy{
		{MaxMessages: 5, PrefixKeep: 0},
		{MaxMessages: 10, PrefixKeep: 3},
		{MaxMessages: 2, PrefixKeep: 0},
	} {
		got := Select(msgs, policy)
		require.NotEmpty(t, got)
		assert.Equal(t, "system", got[0].Role)
		assert.Equal(t, "system prompt", got[0].Text())
		assert.LessOrEqual(t, len(got), policy.MaxMessages+1)
	}
}

func TestSelectIdempotent(t *testing.T) {
	msgs := makeConversation(100)
	policy := Policy{MaxMessages: 10, PrefixKeep: 2}

	first := Select(msgs, policy)
	second := Select(msgs, policy)
	assert.Equal(t, first, second)
}

func TestSelectPrefixLargerThanCap(t *testing.T) {
	// A prefix wider than the cap still yields the prefix plus notice with
	// an empty tail, staying within the +1 bound relative to the prefix.
	msgs := makeConversation(30)
	got := Select(msgs, Policy{MaxMessages: 3, PrefixKeep: 10})

	require.Len(t, got, 12)
	assert.Equal(t, "system prompt", got[0].Text())
	assert.Contains(t, got[11].Text(), "truncated")
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	msgs := makeConversation(100)
	before := len(msgs)

	_ = Select(msgs, Policy{MaxMessages: 10, PrefixKeep: 2})
	assert.Len(t, msgs, before)
	assert.Equal(t, "message 50", msgs[50].Text())
}
