package peatrack

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

const assistModel = "gemini-2.5-flash"

const assistInstruction = `
You are a pragmatic investment assistant reviewing a private, automated
dollar-cost-averaging portfolio report. Comment the figures in at most one
short paragraph: what moved, how the portfolio compares to its benchmark,
and whether the risk figures deserve attention. No financial advice, no
disclaimers, plain prose.`

// AssistEnabled reports whether the commentary feature can run.
func AssistEnabled() bool { return os.Getenv("GEMINI_API_KEY") != "" }

// Commentary asks the model for a short comment on the review's markdown
// report. The feature is optional: callers should only invoke it when
// AssistEnabled is true, and treat errors as a lost comment, not a lost run.
func Commentary(ctx context.Context, review *Review) (string, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("cannot create assistant client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, assistModel,
		genai.Text(review.Markdown()),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: assistInstruction}}},
		})
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}
