package companion

import (
	"context"
	"fmt"

	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/llm"
	"github.com/Sahrin-Tahiyat-Choudhury/Mental-Health-Companion-Chatbot/internal/mood"
)

const replyPrompt = `You are a calm, compassionate AI companion named %s.
Respond in a gentle, non-judgmental, supportive tone (2-3 sentences).
Do not give medical advice or diagnoses. Keep things concise.

User: %s`

const supportPrompt = `You are a calm, supportive companion. A user wrote the following reflection:
"""%s"""
Reply in 2-3 supportive sentences, acknowledge their feelings, and offer one gentle, practical idea (not medical).`

// Companion produces supportive replies in the configured persona
type Companion struct {
	oracle llm.Generator
}

// New creates a companion backed by the given oracle
func New(oracle llm.Generator) *Companion {
	return &Companion{oracle: oracle}
}

// Reply generates a short supportive response to a chat message,
// addressed from the companion's nickname.
func (c *Companion) Reply(ctx context.Context, nickname, userText string) (string, error) {
	return c.oracle.Generate(ctx, fmt.Sprintf(replyPrompt, nickname, userText))
}

// SupportReflection generates a supportive response to a journal entry
func (c *Companion) SupportReflection(ctx context.Context, text string) (string, error) {
	return c.oracle.Generate(ctx, fmt.Sprintf(supportPrompt, text))
}

// ReflectionPrompt picks a short journaling prompt keyed off the most
// recent chat mood. Pass Neutral when there is no history yet.
func ReflectionPrompt(last mood.Label) string {
	switch last {
	case mood.Happy:
		return "What made you smile today? Describe it briefly."
	case mood.Sad:
		return "Tell me one small thing that felt a bit better today, however small."
	case mood.Stressed:
		return "What is one small step you can take right now to ease some stress?"
	case mood.Anxious:
		return "Can you name one specific worry, even briefly? Naming it can help."
	case mood.Neutral:
		return "What's one thing you did today that you want to remember?"
	case mood.Excited:
		return "What's one exciting thing you want to build on tomorrow?"
	default:
		return "What's one thing you're grateful for today?"
	}
}
