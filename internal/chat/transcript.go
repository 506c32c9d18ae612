package chat

import "strings"

// Role identifies who produced a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultInstruction is the system prompt used when the caller supplies none.
const DefaultInstruction = "You are a helpful assistant."

// contextPreamble introduces the global context inside the merged system prompt.
const contextPreamble = "\n\nContext to follow for every response:\n"

// Turn is a single entry in a conversation transcript.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is an ordered conversation history. The zero value is usable.
type Transcript []Turn

// Append adds a turn at the end of the transcript.
func (t *Transcript) Append(role Role, content string) {
	*t = append(*t, Turn{Role: role, Content: content})
}

// DropLast removes the last turn. Used to roll back a user turn whose
// completion call failed so the transcript stays consistent.
func (t *Transcript) DropLast() {
	if n := len(*t); n > 0 {
		*t = (*t)[:n-1]
	}
}

// Prune returns a copy of the transcript reduced to the leading system turn
// (when present) plus the last 2*maxPairs non-system turns, in order.
// maxPairs <= 0 keeps only the leading system turn. The receiver is never
// mutated, and pruning an already pruned transcript is a no-op.
func (t Transcript) Prune(maxPairs int) Transcript {
	var out Transcript

	rest := make([]Turn, 0, len(t))
	for i, turn := range t {
		if i == 0 && turn.Role == RoleSystem {
			out = append(out, turn)
			continue
		}
		if turn.Role == RoleSystem {
			// Stray system turns carry no conversation content; drop them.
			continue
		}
		rest = append(rest, turn)
	}

	if maxPairs > 0 {
		keep := 2 * maxPairs
		if len(rest) > keep {
			rest = rest[len(rest)-keep:]
		}
		out = append(out, rest...)
	}

	return out
}

// BuildMessages produces the message list for a completion request: exactly
// one leading system message (the base instruction, extended with the global
// context when one is set), followed by the transcript's non-system turns in
// order. System turns stored in the transcript are replaced by the merged
// system message.
func (t Transcript) BuildMessages(baseInstruction, globalContext string) []Turn {
	if baseInstruction == "" {
		baseInstruction = DefaultInstruction
	}
	system := baseInstruction
	if ctx := strings.TrimSpace(globalContext); ctx != "" {
		system += contextPreamble + ctx
	}

	messages := make([]Turn, 0, len(t)+1)
	messages = append(messages, Turn{Role: RoleSystem, Content: system})
	for _, turn := range t {
		if turn.Role == RoleSystem {
			continue
		}
		messages = append(messages, turn)
	}
	return messages
}
