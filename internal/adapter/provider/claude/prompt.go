package claude

import (
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// buildPrompt asks for the quote schema as a single JSON object.
func buildPrompt(doc domain.Document, minQuotes, maxQuotes int) string {
	about := fmt.Sprintf("%q", doc.Title)
	if doc.Author != nil && *doc.Author != "" {
		about += " by " + *doc.Author
	}

	return fmt.Sprintf(`You are reading the attached book, %s.

Select %d to %d passages worth rereading on their own: sharp insights, practical wisdom, genuinely funny lines, precise technical explanations, or short memorable stories.

Output ONLY a valid JSON object matching this exact schema:
{
  "quotes": [
    {
      "quote": "<verbatim passage, 1-5 sentences>",
      "page_hint": <page number as printed in the document, or null>,
      "category": "<insight|wisdom|humor|technical|story>",
      "context": "<one sentence explaining where the passage sits in the book, or null>"
    }
  ]
}

Rules:
- Quote the text exactly; do not paraphrase or merge passages
- Each passage must make sense without the surrounding pages
- Do not repeat a passage
- Output ONLY the JSON, no markdown, no explanations`, about, minQuotes, maxQuotes)
}

type quotesPayload struct {
	Quotes []quotePayload `json:"quotes"`
}

type quotePayload struct {
	Quote    string  `json:"quote"`
	PageHint *int    `json:"page_hint"`
	Category string  `json:"category"`
	Context  *string `json:"context"`
}

// parseMessage turns the model answer into candidate quotes. Schema
// validation of each candidate is left to the caller.
func parseMessage(msg *anthropic.Message) ([]domain.CandidateQuote, error) {
	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, domain.NewUpstreamInvalid("empty response")
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		return nil, domain.NewUpstreamInvalid("response truncated at max_tokens")
	}

	raw, err := extractJSON(text.String())
	if err != nil {
		return nil, domain.NewUpstreamInvalid(err.Error())
	}

	var payload quotesPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domain.NewUpstreamInvalid(fmt.Sprintf("decode json: %v", err))
	}

	quotes := make([]domain.CandidateQuote, 0, len(payload.Quotes))
	for _, q := range payload.Quotes {
		c := domain.CandidateQuote{
			Quote:    strings.TrimSpace(q.Quote),
			PageHint: q.PageHint,
			Category: domain.Category(strings.ToLower(strings.TrimSpace(q.Category))),
		}
		if q.Context != nil {
			if ctx := strings.TrimSpace(*q.Context); ctx != "" {
				c.Context = &ctx
			}
		}
		quotes = append(quotes, c)
	}
	return quotes, nil
}

// extractJSON finds the outermost JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
