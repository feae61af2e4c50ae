package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/knowbase"
	"google.golang.org/genai"
)

const askModel = "gemini-2.5-flash"

// askTopK is how many retrieved chunks ground an answer.
const askTopK = 8

// Searcher retrieves the chunks most relevant to a query.
type Searcher interface {
	Search(ctx context.Context, kbID, query string, topK int) ([]knowbase.SearchResult, error)
}

// Ensure Asker implements knowbase.Asker at compile time.
var _ knowbase.Asker = (*Asker)(nil)

// Asker answers questions using retrieval-augmented generation: the question
// is searched against the knowledge base's index and the top chunks are
// handed to Gemini as grounding context.
type Asker struct {
	client   *genai.Client
	searcher Searcher
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, searcher Searcher) *Asker {
	return &Asker{client: client, searcher: searcher}
}

// Ask answers a natural language question about a knowledge base.
// Returns ENOTINDEXED if the knowledge base has not been indexed and
// ENOTFOUND if the search surfaces nothing relevant.
func (a *Asker) Ask(ctx context.Context, kbID, question string) (string, error) {
	if kbID == "" {
		return "", knowbase.Errorf(knowbase.EINVALID, "knowledge base ID required")
	}
	if question == "" {
		return "", knowbase.Errorf(knowbase.EINVALID, "question required")
	}

	results, err := a.searcher.Search(ctx, kbID, question, askTopK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", knowbase.Errorf(knowbase.ENOTFOUND, "no relevant content found for the question")
	}

	prompt := BuildUserPrompt(results, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, askModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", knowbase.Errorf(knowbase.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for answer generation.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about documentation in a knowledge base. Answer based only on the excerpts provided. Cite the source URL of an excerpt when you use it. If the answer is not in the excerpts, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt assembles the grounding excerpts and the question.
// Excerpts are formatted with their titles and source URLs so the model can
// cite them; the block is capped to keep the prompt bounded.
func BuildUserPrompt(results []knowbase.SearchResult, question string) string {
	excerpts := knowbase.CapContext(knowbase.FormatSearchResults(results), knowbase.ContextSizeCap)

	var sb strings.Builder
	sb.WriteString("<excerpts>\n")
	sb.WriteString(excerpts)
	sb.WriteString("\n</excerpts>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
