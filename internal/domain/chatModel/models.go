package chatModel

import (
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message of the conversation.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// Session pairs the extracted document text with the turns exchanged about it.
// A Session is a value: Append and WithHistory return a new Session and leave the
// receiver untouched, so a failed call can never leave a half-written history behind.
type Session struct {
	documentText string
	turns        []Turn
}

// NewSession starts a conversation about documentText. There is no chat before extraction.
func NewSession(documentText string) (Session, error) {
	if strings.TrimSpace(documentText) == "" {
		return Session{}, NewClientRequestError(MissingFieldsMessage, nil)
	}
	return Session{documentText: documentText}, nil
}

func (s Session) DocumentText() string {
	return s.documentText
}

// IsReady reports whether the session holds document text.
func (s Session) IsReady() bool {
	return s.documentText != ""
}

// Turns returns a copy of the history in chronological order.
func (s Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s Session) Len() int {
	return len(s.turns)
}

// WithHistory replaces the history with a caller supplied one, e.g. decoded from a request.
func (s Session) WithHistory(turns []Turn) (Session, error) {
	for i, t := range turns {
		if !t.Role.IsValid() {
			return s, NewClientRequestError(InvalidHistoryMessage, nil).withIndex(i)
		}
	}
	next := Session{documentText: s.documentText, turns: make([]Turn, len(turns))}
	copy(next.turns, turns)
	return next, nil
}

// Append returns a new Session with turns added after the existing history.
func (s Session) Append(turns ...Turn) Session {
	next := Session{documentText: s.documentText, turns: make([]Turn, 0, len(s.turns)+len(turns))}
	next.turns = append(next.turns, s.turns...)
	next.turns = append(next.turns, turns...)
	return next
}

// LastAnswer returns the content of the latest assistant turn.
func (s Session) LastAnswer() (string, bool) {
	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == RoleAssistant {
			return s.turns[i].Content, true
		}
	}
	return "", false
}
