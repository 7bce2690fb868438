package ledger

import (
	"context"
	"sync"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/persist"
)

// ReflectionLedger is the ordered, append-only record of journal entries.
// Parallel to TurnLedger, stored and mirrored separately.
type ReflectionLedger struct {
	mu      sync.Mutex
	entries []Reflection
	mirror  *persist.Adapter
	outcome persist.Outcome
}

// NewReflectionLedger creates an empty reflection ledger mirrored through adapter
func NewReflectionLedger(mirror *persist.Adapter) *ReflectionLedger {
	return &ReflectionLedger{mirror: mirror}
}

// Append adds a reflection at the end. Always succeeds in-memory.
func (l *ReflectionLedger) Append(ctx context.Context, r Reflection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r)
	l.outcome = l.mirror.Save(ctx, l.entries)
}

// All returns an ordered, independent snapshot
func (l *ReflectionLedger) All() []Reflection {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Reflection, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of reflections
func (l *ReflectionLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear atomically empties the ledger and wipes the mirror
func (l *ReflectionLedger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.outcome = l.mirror.Clear(ctx)
}

// DeleteAt removes exactly one reflection at index
func (l *ReflectionLedger) DeleteAt(ctx context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.entries) {
		return ErrIndexOutOfRange
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	l.outcome = l.mirror.Save(ctx, l.entries)
	return nil
}

// Restore replaces the ledger content from the durable mirror
func (l *ReflectionLedger) Restore(ctx context.Context) {
	var loaded []Reflection
	if !l.mirror.Load(ctx, &loaded) {
		return
	}
	for i := range loaded {
		if loaded[i].Mood != "" && !mood.Valid(loaded[i].Mood) {
			loaded[i].Mood = mood.Neutral
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = loaded
	l.outcome = persist.Ok
}

// Resync re-mirrors the current content to the durable store
func (l *ReflectionLedger) Resync(ctx context.Context) persist.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.entries == nil {
		l.outcome = l.mirror.Clear(ctx)
	} else {
		l.outcome = l.mirror.Save(ctx, l.entries)
	}
	return l.outcome
}

// LastOutcome reports whether the most recent mirror write landed
func (l *ReflectionLedger) LastOutcome() persist.Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outcome
}
