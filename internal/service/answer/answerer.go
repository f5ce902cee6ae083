// Package answer implements the second pipeline stage: turning a routed
// document (or nothing) into the final reply text.
package answer

import (
	"context"
	"fmt"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/internal/memory"
	"github.com/sandevgo/provostbot/pkg/log"
)

// RefusalMessage is returned when no document matched and the
// general-conversation call is unavailable.
const RefusalMessage = "I could not identify a relevant document to search."

// ContactRecord is returned verbatim for generic "who do I contact" questions.
type ContactRecord struct {
	Department string
	Phone      string
	Fax        string
	Email      string
}

func (c ContactRecord) render() string {
	return fmt.Sprintf("%s\n    Office: %s\n    Fax: %s\n    Email: %s", c.Department, c.Phone, c.Fax, c.Email)
}

type Answerer struct {
	oracle  core.Oracle
	contact ContactRecord
}

func New(oracle core.Oracle, contact ContactRecord) *Answerer {
	return &Answerer{oracle: oracle, contact: contact}
}

// Grounded answers the question using only the referenced document. The
// oracle's reply is returned verbatim; errors propagate to the caller, which
// must not record the exchange.
func (a *Answerer) Grounded(ctx context.Context, question, url string, history []core.Turn) (string, error) {
	prompt := fmt.Sprintf(`You are a strict Q&A assistant for the Santa Clara University (SCU) Provost's Office.
Your persona is a busy but helpful administrative assistant. Your responses must be extremely concise, direct, and professional.

**Core Task:** Answer the user's question using ONLY the text from the provided URL: %s

**Conversation History (for context):**
---
%s
---

**Response Rules (Follow Strictly):**
1.  **Be Brief:** Provide only the direct answer. Do not use extra words, conversational filler, or pleasantries.
2.  **"Not Found" Handling:** If the requested information (like a person or title) is not on the webpage, state clearly and simply that it is not listed.
    * *Example for a missing title:* "There is no position with that title listed on the Provost's Office webpage."
3.  **General Contact:** If the user asks a general "who to contact" question, provide ONLY the following details, else search the specific webpage for the person/department asked.
    %s

**ABSOLUTELY DO NOT:**
* Do NOT mention that you are a bot or an AI.
* Do NOT mention that you performed a search or looked at a website.
* Do NOT include the URL in your answer.
* Do NOT explain *why* the information is not available.

**User's Question:**
%s

**Answer:**
`, url, memory.Render(history), a.contact.render(), question)

	return a.oracle.Generate(ctx, prompt)
}

// Fallback handles questions no document matched. It makes a single minimal
// oracle call so greetings and small talk still get a human reply; if that
// call fails too, the fixed refusal line is returned instead of an error.
func (a *Answerer) Fallback(ctx context.Context, question string, history []core.Turn) string {
	prompt := fmt.Sprintf(`You are a concise assistant for the Santa Clara University Provost's Office.
If the message below is a greeting or a general conversational remark, reply briefly and politely.
Otherwise state in one sentence that you cannot help with this request.
Do not mention that you are a bot or an AI.

**Conversation History (for context):**
---
%s
---

**Message:**
%s
`, memory.Render(history), question)

	reply, err := a.oracle.Generate(ctx, prompt)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("fallback call failed, using refusal message")
		return RefusalMessage
	}
	return reply
}
