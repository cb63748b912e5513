package chatModel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RequiresText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := NewSession(text)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrClientRequest))
		assert.Equal(t, MissingFieldsMessage, UserMessage(err))
	}

	s, err := NewSession("Invoice total: $42.")
	require.NoError(t, err)
	assert.True(t, s.IsReady())
	assert.Equal(t, "Invoice total: $42.", s.DocumentText())
	assert.Zero(t, s.Len())
}

func TestSession_AppendKeepsOrderAndReceiver(t *testing.T) {
	s, err := NewSession("doc")
	require.NoError(t, err)

	first := s.Append(UserTurn("q1"), AssistantTurn("a1"))
	second := first.Append(UserTurn("q2"), AssistantTurn("a2"))

	assert.Zero(t, s.Len(), "original session must not change")
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "q1"},
		{Role: RoleAssistant, Content: "a1"},
		{Role: RoleUser, Content: "q2"},
		{Role: RoleAssistant, Content: "a2"},
	}, second.Turns())

	answer, ok := second.LastAnswer()
	assert.True(t, ok)
	assert.Equal(t, "a2", answer)
}

func TestSession_TurnsIsACopy(t *testing.T) {
	s, _ := NewSession("doc")
	s = s.Append(UserTurn("q1"))

	turns := s.Turns()
	turns[0].Content = "changed"

	assert.Equal(t, "q1", s.Turns()[0].Content)
}

func TestSession_AppendDoesNotShareBackingArray(t *testing.T) {
	s, _ := NewSession("doc")
	base := s.Append(UserTurn("q1"), AssistantTurn("a1"))

	left := base.Append(UserTurn("left"))
	right := base.Append(UserTurn("right"))

	assert.Equal(t, "left", left.Turns()[2].Content)
	assert.Equal(t, "right", right.Turns()[2].Content)
}

func TestSession_WithHistory(t *testing.T) {
	s, _ := NewSession("doc")

	next, err := s.WithHistory([]Turn{UserTurn("hi"), AssistantTurn("hello")})
	require.NoError(t, err)
	assert.Equal(t, 2, next.Len())
	assert.Zero(t, s.Len())

	_, err = s.WithHistory([]Turn{UserTurn("hi"), {Role: "system", Content: "x"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClientRequest))
	assert.Equal(t, InvalidHistoryMessage, UserMessage(err))
	assert.Contains(t, err.Error(), "item 1")
}

func TestUserMessage(t *testing.T) {
	cause := errors.New("quota exceeded for key AIza...")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", NewValidationError("File size exceeds the maximum limit of 5 MB."), "File size exceeds the maximum limit of 5 MB."},
		{"client", NewClientRequestError(MissingFieldsMessage, nil), MissingFieldsMessage},
		{"extraction hides detail", NewExtractionError("bad xref", cause), ExtractionFailedMessage},
		{"generation hides detail", NewGenerationError("provider call failed", cause), GenerationFailedMessage},
		{"wrapped generation", fmt.Errorf("ask: %w", NewGenerationError("x", cause)), GenerationFailedMessage},
		{"unknown", cause, GenerationFailedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestCoreError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := NewGenerationError("provider call failed", cause)

	assert.True(t, errors.Is(err, ErrGeneration))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrExtraction))
	assert.Contains(t, err.Error(), "dial tcp: timeout")
}
