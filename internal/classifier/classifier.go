package classifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
)

const moodPrompt = `Determine the mood of this user message. Respond with exactly ONE word from:
Happy, Sad, Stressed, Anxious, Neutral, Excited

Message: %s`

// maxLabelLen bounds how much of the oracle's answer is considered a label.
// Anything a real label would fit in; guards against rambling responses.
const maxLabelLen = 20

// Detector assigns a mood label to user text via the LLM oracle
type Detector struct {
	oracle llm.Generator
}

// NewDetector creates a new mood detector
func NewDetector(oracle llm.Generator) *Detector {
	return &Detector{oracle: oracle}
}

// Detect classifies text into the mood vocabulary. The caller filters blank
// input before calling. Mood detection is advisory: any oracle failure or
// out-of-vocabulary answer falls back to Neutral instead of surfacing an
// error.
func (d *Detector) Detect(ctx context.Context, text string) mood.Label {
	resp, err := d.oracle.Generate(ctx, fmt.Sprintf(moodPrompt, text))
	if err != nil {
		log.Printf("Mood detection failed, using Neutral: %v", err)
		return mood.Neutral
	}
	return normalizeAnswer(resp)
}

// normalizeAnswer reduces an oracle response to a vocabulary member: first
// non-blank line, truncated, case/whitespace-normalized. Non-members become
// Neutral.
func normalizeAnswer(resp string) mood.Label {
	line := strings.TrimSpace(resp)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxLabelLen {
		line = line[:maxLabelLen]
	}

	label, ok := mood.Normalize(line)
	if !ok {
		return mood.Neutral
	}
	return label
}
