package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/careernova/portfolio-engine/internal/prompts"
	"github.com/careernova/portfolio-engine/internal/types"
)

const (
	// classifyTimeout caps the intent-classification round trip. A slow
	// classifier should degrade to the default mode, not stall the answer.
	classifyTimeout = 15 * time.Second
	// answerTimeout caps the answer generation round trip.
	answerTimeout = 60 * time.Second
	// historyWindow is the number of trailing conversation turns included
	// in the RAG prompt.
	historyWindow = 6
)

// Canned replies returned when a generation path fails. The chat surface
// always answers; transport and model errors never reach the visitor.
const (
	interviewApology = "Sorry, I couldn't generate interview questions at this time. Please try again."
	atsApology       = "Sorry, I couldn't run the ATS analysis at this time. Please try again."
	ragApology       = "I'm sorry, I'm having trouble connecting to my brain right now. Please try again in a few seconds."
)

// TextGenerator produces a completion for a single prompt. *llm.GeminiClient
// satisfies it.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Request carries one chat message together with the portfolio it is asked
// against.
type Request struct {
	Slug       string
	Message    string
	Portfolio  types.Portfolio
	ResumeText string
	History    []types.ChatTurn
}

// Answer is the engine's reply, tagged with the mode that produced it.
type Answer struct {
	Text string
	Mode Mode
}

// Engine routes chat messages by intent and generates replies.
type Engine struct {
	gen TextGenerator
}

// NewEngine builds an Engine backed by gen.
func NewEngine(gen TextGenerator) *Engine {
	return &Engine{gen: gen}
}

// Chat classifies the message and dispatches to the matching answer path.
// It never returns an error: every failure path degrades to a canned reply
// so the visitor-facing chat always responds.
func (e *Engine) Chat(ctx context.Context, req Request) Answer {
	mode := e.detectIntent(ctx, req.Message)
	info := BuildContext(req.Portfolio, req.ResumeText)

	switch mode {
	case ModeInterview:
		return Answer{Text: e.interviewReply(ctx, info, req.Message), Mode: mode}
	case ModeATS:
		return Answer{Text: e.atsReply(ctx, info, req.Message), Mode: mode}
	case ModeRAG:
		return Answer{Text: e.ragReply(ctx, info, req.Message, req.History), Mode: mode}
	}
	// Unreachable: detectIntent only returns the three known modes.
	return Answer{Text: ragApology, Mode: ModeRAG}
}

// detectIntent asks the classifier which mode the message belongs to.
// Any failure, including an unrecognized label, resolves to ModeRAG.
func (e *Engine) detectIntent(ctx context.Context, message string) Mode {
	ctx, cancel := context.WithTimeout(ctx, classifyTimeout)
	defer cancel()

	prompt := prompts.Format(prompts.MustGet("chat.json", "intent-classification"), map[string]string{
		"Message": message,
	})
	label, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("chat: intent classification failed, defaulting to RAG: %v", err)
		return ModeRAG
	}

	mode, ok := ParseMode(label)
	if !ok {
		log.Printf("chat: unrecognized intent label %q, defaulting to RAG", strings.TrimSpace(label))
	}
	return mode
}

func (e *Engine) interviewReply(ctx context.Context, info, message string) string {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	prompt := prompts.Format(prompts.MustGet("chat.json", "interview-questions"), map[string]string{
		"Context": info,
		"Message": message,
	})
	text, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("chat: interview generation failed: %v", err)
		return interviewApology
	}
	return text
}

func (e *Engine) atsReply(ctx context.Context, info, message string) string {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	prompt := prompts.Format(prompts.MustGet("chat.json", "ats-analysis"), map[string]string{
		"Context": info,
		"Message": message,
	})
	text, err := e.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("chat: ats analysis failed: %v", err)
		return atsApology
	}
	return text
}

func (e *Engine) ragReply(ctx context.Context, info, message string, history []types.ChatTurn) string {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	var b strings.Builder
	b.WriteString(prompts.Format(prompts.MustGet("chat.json", "rag-system"), map[string]string{
		"Context": info,
	}))

	if turns := tailTurns(history, historyWindow); len(turns) > 0 {
		b.WriteString("\n\n--- Conversation History ---\n")
		for _, t := range turns {
			b.WriteString(strings.ToUpper(t.Role))
			b.WriteString(": ")
			b.WriteString(t.Content)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nUSER: ")
	b.WriteString(message)
	b.WriteString("\nASSISTANT:")

	text, err := e.gen.GenerateText(ctx, b.String())
	if err != nil {
		log.Printf("chat: rag generation failed: %v", err)
		return ragApology
	}
	return text
}

// tailTurns returns the last n turns of history.
func tailTurns(history []types.ChatTurn, n int) []types.ChatTurn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
