package persist

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

// Outcome reports whether a best-effort persistence call reached the
// durable store. It is informational: a Failed outcome never interrupts
// the user-visible flow.
type Outcome int

const (
	Ok Outcome = iota
	Failed
)

func (o Outcome) String() string {
	if o == Ok {
		return "ok"
	}
	return "failed"
}

// Adapter mirrors one ledger collection to a path in the durable store.
// Every save replaces the whole remote value. All store errors are
// swallowed; the in-memory ledger stays the source of truth and the session
// continues in memory-only mode.
type Adapter struct {
	store store.Store
	path  string
}

// New creates an adapter bound to a store path. A nil store means
// memory-only mode: every call reports Failed and does nothing else.
func New(st store.Store, path string) *Adapter {
	return &Adapter{store: st, path: path}
}

// Save overwrites the remote collection with records (last-write-wins)
func (a *Adapter) Save(ctx context.Context, records any) Outcome {
	data, err := json.Marshal(records)
	if err != nil {
		log.Printf("Persistence: marshaling %s: %v", a.path, err)
		return Failed
	}
	return a.write(ctx, data)
}

// Clear overwrites the remote collection with an empty array
func (a *Adapter) Clear(ctx context.Context) Outcome {
	return a.write(ctx, []byte("[]"))
}

func (a *Adapter) write(ctx context.Context, data []byte) Outcome {
	if a == nil || a.store == nil {
		return Failed
	}
	if err := a.store.Set(ctx, a.path, data); err != nil {
		log.Printf("Persistence unavailable for %s (continuing in memory): %v", a.path, err)
		return Failed
	}
	return Ok
}

// Load reads the remote collection into out. found is false when the path
// was never written, the store is unreachable, or the stored value does not
// decode; the session then starts empty.
func (a *Adapter) Load(ctx context.Context, out any) bool {
	if a == nil || a.store == nil {
		return false
	}
	data, found, err := a.store.Get(ctx, a.path)
	if err != nil {
		log.Printf("Persistence: loading %s: %v", a.path, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Persistence: decoding %s: %v", a.path, err)
		return false
	}
	return true
}
