package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/persist"
)

// ErrIndexOutOfRange is returned by DeleteAt for positions outside the
// ledger. The ledger is left unchanged.
var ErrIndexOutOfRange = errors.New("ledger: index out of range")

// Turn is one chat exchange. Immutable once appended; its position in the
// ledger is its sequence index.
type Turn struct {
	UserText  string     `json:"userText"`
	ReplyText string     `json:"replyText"`
	Mood      mood.Label `json:"mood"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// Reflection is one free-standing journal entry
type Reflection struct {
	Text      string     `json:"text"`
	Mood      mood.Label `json:"mood,omitempty"`
	Timestamp string     `json:"timestamp,omitempty"`
}

// TurnLedger is the ordered, append-only record of chat turns. Insertion
// order is chronological order. Mutations are serialized critical sections
// and each one mirrors the full collection to the durable store; the mirror
// write is best-effort and never fails the in-memory operation.
type TurnLedger struct {
	mu      sync.Mutex
	turns   []Turn
	mirror  *persist.Adapter
	outcome persist.Outcome
}

// NewTurnLedger creates an empty turn ledger mirrored through adapter
func NewTurnLedger(mirror *persist.Adapter) *TurnLedger {
	return &TurnLedger{mirror: mirror}
}

// Append adds a turn at the end. Always succeeds in-memory.
func (l *TurnLedger) Append(ctx context.Context, t Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t)
	l.outcome = l.mirror.Save(ctx, l.turns)
}

// All returns an ordered snapshot. The snapshot is independent of the
// ledger and may be iterated repeatedly without side effects.
func (l *TurnLedger) All() []Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns
func (l *TurnLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Clear atomically empties the ledger and wipes the mirror
func (l *TurnLedger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
	l.outcome = l.mirror.Clear(ctx)
}

// DeleteAt removes exactly one turn at index. Out-of-range indices are
// rejected with ErrIndexOutOfRange and nothing changes.
func (l *TurnLedger) DeleteAt(ctx context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.turns) {
		return ErrIndexOutOfRange
	}
	l.turns = append(l.turns[:index], l.turns[index+1:]...)
	l.outcome = l.mirror.Save(ctx, l.turns)
	return nil
}

// Moods returns the mood sequence in chronological order
func (l *TurnLedger) Moods() []mood.Label {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]mood.Label, len(l.turns))
	for i, t := range l.turns {
		out[i] = t.Mood
	}
	return out
}

// LastMood returns the most recent mood, ok=false on an empty ledger
func (l *TurnLedger) LastMood() (mood.Label, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.turns) == 0 {
		return mood.Neutral, false
	}
	return l.turns[len(l.turns)-1].Mood, true
}

// Restore replaces the ledger content from the durable mirror, dropping
// any stored mood outside the vocabulary back to Neutral. No-op when the
// mirror has nothing.
func (l *TurnLedger) Restore(ctx context.Context) {
	var loaded []Turn
	if !l.mirror.Load(ctx, &loaded) {
		return
	}
	for i := range loaded {
		if !mood.Valid(loaded[i].Mood) {
			loaded[i].Mood = mood.Neutral
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = loaded
	l.outcome = persist.Ok
}

// Resync re-mirrors the current content to the durable store
func (l *TurnLedger) Resync(ctx context.Context) persist.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.turns == nil {
		l.outcome = l.mirror.Clear(ctx)
	} else {
		l.outcome = l.mirror.Save(ctx, l.turns)
	}
	return l.outcome
}

// LastOutcome reports whether the most recent mirror write landed
func (l *TurnLedger) LastOutcome() persist.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}
