package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tubebrief/internal/text"
)

type LLM interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const initialPrompt = `Write a concise summary of the following youtube transcript with key takeaways for the audience:
"%s"
CONCISE SUMMARY:`

const refinePrompt = `Your job is to produce a final key takeaways summary.
We have provided an existing summary up to a certain point: %s

We have the opportunity to refine the existing summary (only if needed) with some more context below.
------------
%s
------------
Given the new context, refine the original summary with new key takeaways.
If the context isn't useful, return the original summary.`

// Chain implements refine-style summarization: one running summary, updated
// once per chunk by merging the chunk's content into the prior state.
type Chain struct {
	llm LLM
}

func NewChain(llm LLM) *Chain {
	return &Chain{llm: llm}
}

// Run folds the chunks into a single summary. Chunks are consumed strictly
// in order; refine call k receives call k-1's output as its prior summary,
// so this loop must never be parallelized. Any LLM failure aborts the whole
// chain.
func (c *Chain) Run(ctx context.Context, chunks []text.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", errors.New("no chunks to summarize")
	}

	running, err := c.llm.Complete(ctx, fmt.Sprintf(initialPrompt, chunks[0].Content))
	if err != nil {
		return "", fmt.Errorf("initial summary: %w", err)
	}

	for i, chunk := range chunks[1:] {
		running, err = c.llm.Complete(ctx, fmt.Sprintf(refinePrompt, running, chunk.Content))
		if err != nil {
			return "", fmt.Errorf("refine step %d: %w", i+1, err)
		}
	}

	slog.InfoContext(ctx, "summary chain completed", "chunks", len(chunks), "length", len(running))
	return strings.TrimSpace(running), nil
}
