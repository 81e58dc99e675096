// Package chat answers portfolio questions through an intent-routed LLM
// pipeline: each message is classified into one of three handling modes and
// dispatched to the matching prompt path.
package chat

import "strings"

// Mode is the handling mode resolved for a chat message.
// The set is closed: dispatch sites switch over exactly these three cases.
type Mode string

const (
	// ModeRAG answers general questions from portfolio context. It is the
	// default whenever classification fails or is ambiguous.
	ModeRAG Mode = "RAG"
	// ModeInterview generates tailored interview questions.
	ModeInterview Mode = "INTERVIEW"
	// ModeATS produces an ATS score analysis of the resume.
	ModeATS Mode = "ATS"
)

// ParseMode maps a raw classifier label onto a Mode.
// Unrecognized labels report false; callers fall back to ModeRAG.
func ParseMode(label string) (Mode, bool) {
	switch Mode(strings.ToUpper(strings.TrimSpace(label))) {
	case ModeRAG:
		return ModeRAG, true
	case ModeInterview:
		return ModeInterview, true
	case ModeATS:
		return ModeATS, true
	}
	return ModeRAG, false
}
