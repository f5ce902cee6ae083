package router

import (
	"context"
	"errors"
	"fmt"
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

var candidates = []string{"provost.json", "staff.json", "calendar.json"}

func TestRouteStrictMembership(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  core.RoutingDecision
	}{
		{
			name:  "exact match",
			reply: "staff.json",
			want:  core.Matched("staff.json"),
		},
		{
			name:  "surrounding whitespace trimmed once",
			reply: "  provost.json\n",
			want:  core.Matched("provost.json"),
		},
		{
			name:  "extra words",
			reply: "The answer is staff.json",
			want:  core.Unmatched(),
		},
		{
			name:  "hallucinated identifier",
			reply: "deans.json",
			want:  core.Unmatched(),
		},
		{
			name:  "partial identifier never substring-matches",
			reply: "staff",
			want:  core.Unmatched(),
		},
		{
			name:  "empty reply",
			reply: "",
			want:  core.Unmatched(),
		},
		{
			name: "oracle failure fails open",
			err:  errors.New("quota exceeded"),
			want: core.Unmatched(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeOracle{reply: tt.reply, err: tt.err}, 0, 0)
			got := r.Route(context.Background(), "who is on staff?", candidates, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouteEmptyCandidates(t *testing.T) {
	oracle := &fakeOracle{reply: "anything"}
	r := New(oracle, 0, 0)

	got := r.Route(context.Background(), "hello", nil, nil)

	assert.Equal(t, core.Unmatched(), got)
	assert.Empty(t, oracle.prompts, "no oracle call without candidates")
}

func TestRoutePromptComposition(t *testing.T) {
	oracle := &fakeOracle{reply: "provost.json"}
	r := New(oracle, 0, 0)
	history := []core.Turn{
		{Role: core.RoleUser, Content: "hi"},
		{Role: core.RoleAssistant, Content: "hello"},
	}

	r.Route(context.Background(), "who is the provost?", candidates, history)

	require.Len(t, oracle.prompts, 1)
	prompt := oracle.prompts[0]
	assert.Contains(t, prompt, "provost.json\nstaff.json\ncalendar.json")
	assert.Contains(t, prompt, "User: hi\nAssistant: hello")
	assert.Contains(t, prompt, "who is the provost?")
}

func TestShortlistCapsCandidates(t *testing.T) {
	large := make([]string, 40)
	for i := range large {
		large[i] = fmt.Sprintf("dept-%02d.json", i)
	}
	large[17] = "provost-office-contacts.json"

	oracle := &fakeOracle{reply: large[17]}
	r := New(oracle, 0, 10)

	got := r.Route(context.Background(), "provost office contacts", large, nil)

	assert.Equal(t, core.Matched("provost-office-contacts.json"), got)
	require.Len(t, oracle.prompts, 1)
	// The relevant identifier survives the pre-filter.
	assert.Contains(t, oracle.prompts[0], "provost-office-contacts.json")
}

func TestShortlistPreservesOrderWhenSmall(t *testing.T) {
	r := New(&fakeOracle{}, 0, 10)
	got := r.shortlist("anything", candidates)
	assert.Equal(t, candidates, got)
}
