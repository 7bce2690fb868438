package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/classifier"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/companion"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/insights"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/ledger"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/persist"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/store"
)

// DefaultNickname is used when no nickname is configured or a blank one is set
const DefaultNickname = "CalmMate"

// Store paths for the two ledgers
const (
	historyPath     = "chat_history"
	reflectionsPath = "reflections"
)

// ErrEmptyInput rejects blank user text before it reaches the classifier or
// a ledger. No side effects occur.
var ErrEmptyInput = errors.New("session: text must not be empty")

// Session owns the active user's ledgers and the collaborators that act on
// them. One user action is handled to completion before the next starts;
// the mutex enforces that even if the host serves requests concurrently.
type Session struct {
	mu          sync.Mutex
	nickname    string
	turns       *ledger.TurnLedger
	reflections *ledger.ReflectionLedger
	detector    *classifier.Detector
	companion   *companion.Companion
}

// New creates a session backed by the given oracle and durable store.
// A nil store runs the session in memory-only mode.
func New(oracle llm.Generator, st store.Store, nickname string) *Session {
	if strings.TrimSpace(nickname) == "" {
		nickname = DefaultNickname
	}
	return &Session{
		nickname:    nickname,
		turns:       ledger.NewTurnLedger(persist.New(st, historyPath)),
		reflections: ledger.NewReflectionLedger(persist.New(st, reflectionsPath)),
		detector:    classifier.NewDetector(oracle),
		companion:   companion.New(oracle),
	}
}

// Restore loads both ledgers from the durable store. Missing or unreadable
// state just means the session starts empty.
func (s *Session) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns.Restore(ctx)
	s.reflections.Restore(ctx)
	if n := s.turns.Len(); n > 0 {
		log.Printf("Restored %d turns and %d reflections", n, s.reflections.Len())
	}
}

// Send handles one chat message: generate a reply, classify the mood,
// append the turn and mirror the ledger. A reply failure is downgraded to
// an empty reply; the turn is still recorded.
func (s *Session) Send(ctx context.Context, text string) (ledger.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return ledger.Turn{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := s.companion.Reply(ctx, s.nickname, text)
	if err != nil {
		log.Printf("Reply generation failed: %v", err)
		reply = ""
	}
	m := s.detector.Detect(ctx, text)

	turn := ledger.Turn{
		UserText:  text,
		ReplyText: reply,
		Mood:      m,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	s.turns.Append(ctx, turn)
	return turn, nil
}

// Reflect handles one journal entry and returns the recorded reflection
// together with a supportive reply. The reply is not persisted.
func (s *Session) Reflect(ctx context.Context, text string) (ledger.Reflection, string, error) {
	if strings.TrimSpace(text) == "" {
		return ledger.Reflection{}, "", ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	support, err := s.companion.SupportReflection(ctx, text)
	if err != nil {
		log.Printf("Reflection support failed: %v", err)
		support = ""
	}
	m := s.detector.Detect(ctx, text)

	r := ledger.Reflection{
		Text:      text,
		Mood:      m,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	s.reflections.Append(ctx, r)
	return r, support, nil
}

// History returns the ordered chat turns
func (s *Session) History() []ledger.Turn {
	return s.turns.All()
}

// Reflections returns the ordered journal entries
func (s *Session) Reflections() []ledger.Reflection {
	return s.reflections.All()
}

// ClearHistory empties the chat ledger and wipes its mirror
func (s *Session) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns.Clear(ctx)
}

// ClearReflections empties the reflection ledger and wipes its mirror
func (s *Session) ClearReflections(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reflections.Clear(ctx)
}

// DeleteTurn removes the turn at index; ledger.ErrIndexOutOfRange when out
// of bounds.
func (s *Session) DeleteTurn(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns.DeleteAt(ctx, index)
}

// DeleteReflection removes the reflection at index
func (s *Session) DeleteReflection(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reflections.DeleteAt(ctx, index)
}

// Insights derives advisory statements from the chat mood history
func (s *Session) Insights() []string {
	return insights.Analyze(s.turns.Moods())
}

// MoodCounts tallies the chat mood history for the chart
func (s *Session) MoodCounts() map[mood.Label]int {
	return insights.Counts(s.turns.Moods())
}

// ReflectionPrompt picks a journaling prompt from the last chat mood
func (s *Session) ReflectionPrompt() string {
	last, ok := s.turns.LastMood()
	if !ok {
		last = mood.Neutral
	}
	return companion.ReflectionPrompt(last)
}

// Nickname returns the companion's current nickname
func (s *Session) Nickname() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nickname
}

// SetNickname updates the companion's nickname; blank resets to the default
func (s *Session) SetNickname(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultNickname
	}
	s.nickname = name
	return s.nickname
}

// Degraded reports whether the latest mirror write of either ledger failed,
// meaning the session is running memory-only.
func (s *Session) Degraded() bool {
	return s.turns.LastOutcome() == persist.Failed ||
		s.reflections.LastOutcome() == persist.Failed
}

// Resync re-mirrors both ledgers to the durable store. Used by the optional
// background re-sync job to heal a transient store outage.
func (s *Session) Resync(ctx context.Context) persist.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.turns.Resync(ctx)
	b := s.reflections.Resync(ctx)
	if a == persist.Failed || b == persist.Failed {
		return persist.Failed
	}
	return persist.Ok
}
