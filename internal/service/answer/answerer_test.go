package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOracle struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var contact = ContactRecord{
	Department: "Office of the Provost and Executive Vice President",
	Phone:      "408 554 4533",
	Fax:        "408 551 6074",
	Email:      "provost@scu.edu",
}

func TestGrounded(t *testing.T) {
	oracle := &fakeOracle{reply: "The provost is James Glaser."}
	a := New(oracle, contact)
	history := []core.Turn{{Role: core.RoleUser, Content: "hi"}}

	got, err := a.Grounded(context.Background(), "who is the provost?", "https://www.scu.edu/provost/", history)
	require.NoError(t, err)

	// The oracle's reply is passed through verbatim.
	assert.Equal(t, "The provost is James Glaser.", got)

	require.Len(t, oracle.prompts, 1)
	prompt := oracle.prompts[0]
	assert.Contains(t, prompt, "ONLY the text from the provided URL: https://www.scu.edu/provost/")
	assert.Contains(t, prompt, "User: hi")
	assert.Contains(t, prompt, "who is the provost?")
	assert.Contains(t, prompt, "408 554 4533")
	assert.Contains(t, prompt, "provost@scu.edu")
	assert.Contains(t, prompt, "Do NOT include the URL in your answer.")
}

func TestGroundedErrorPropagates(t *testing.T) {
	oracle := &fakeOracle{err: core.ErrOracleTimeout}
	a := New(oracle, contact)

	_, err := a.Grounded(context.Background(), "q", "https://x/a", nil)
	assert.ErrorIs(t, err, core.ErrOracleTimeout)
}

func TestFallback(t *testing.T) {
	oracle := &fakeOracle{reply: "Hello! How can I help?"}
	a := New(oracle, contact)

	got := a.Fallback(context.Background(), "good morning", nil)

	assert.Equal(t, "Hello! How can I help?", got)
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "good morning")
	assert.NotContains(t, oracle.prompts[0], "provided URL")
}

func TestFallbackErrorUsesRefusal(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("boom")}
	a := New(oracle, contact)

	got := a.Fallback(context.Background(), "what is the meaning of life", nil)
	assert.Equal(t, RefusalMessage, got)
}
