package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
)

func fixedOracle(resp string, err error) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		return resp, err
	})
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     mood.Label
	}{
		{"exact label", "Happy", nil, mood.Happy},
		{"lowercase", "anxious", nil, mood.Anxious},
		{"padded", "  Excited  ", nil, mood.Excited},
		{"multiline keeps first line", "Sad\nThe user sounds down.", nil, mood.Sad},
		{"leading blank lines", "\n\nStressed\n", nil, mood.Stressed},
		{"hallucinated label", "Melancholy", nil, mood.Neutral},
		{"rambling answer", "The mood of this message is clearly Happy", nil, mood.Neutral},
		{"empty response", "", nil, mood.Neutral},
		{"oracle error", "", errors.New("oracle down"), mood.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(fixedOracle(tt.response, tt.err))
			got := d.Detect(context.Background(), "some message")
			if got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSingleCall(t *testing.T) {
	calls := 0
	oracle := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("unavailable")
	})

	d := NewDetector(oracle)
	if got := d.Detect(context.Background(), "hello"); got != mood.Neutral {
		t.Errorf("expected Neutral fallback, got %q", got)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 oracle call, got %d", calls)
	}
}

func TestDetectPromptContainsMessage(t *testing.T) {
	var seen string
	oracle := llm.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "Neutral", nil
	})

	NewDetector(oracle).Detect(context.Background(), "rough day at work")
	if seen == "" {
		t.Fatal("oracle never called")
	}
	if !strings.Contains(seen, "rough day at work") {
		t.Errorf("prompt does not contain the user message: %q", seen)
	}
	if !strings.Contains(seen, "Happy, Sad, Stressed, Anxious, Neutral, Excited") {
		t.Errorf("prompt does not list the vocabulary: %q", seen)
	}
}
