package core

import "time"

const (
	BotName    = "ProvostBot"
	BotVersion = "0.1.0"
)

const (
	RoleUser      = "User"
	RoleAssistant = "Assistant"
)

// Turn is one recorded utterance in the conversation window.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RoutingDecision is the outcome of the routing stage: either exactly one
// catalog identifier or nothing.
type RoutingDecision struct {
	Identifier string
	Matched    bool
}

func Matched(identifier string) RoutingDecision {
	return RoutingDecision{Identifier: identifier, Matched: true}
}

func Unmatched() RoutingDecision {
	return RoutingDecision{}
}

// Result is the terminal value of one pipeline run.
type Result struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

// Exchange is one completed question/answer pair as recorded in the audit log.
type Exchange struct {
	ID         int64     `json:"id"`
	Question   string    `json:"question"`
	Identifier string    `json:"identifier,omitempty"`
	SourceURL  string    `json:"source_url,omitempty"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}
