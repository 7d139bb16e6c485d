package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/internal/text"
)

// echoLLM records every prompt and answers with a deterministic marker so
// chaining of outputs into later prompts can be asserted.
type echoLLM struct {
	prompts []string
	failAt  int
}

func (e *echoLLM) Complete(_ context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if e.failAt > 0 && len(e.prompts) == e.failAt {
		return "", errors.New("provider exploded")
	}
	return fmt.Sprintf("summary-%d", len(e.prompts)), nil
}

func chunksOf(contents ...string) []text.Chunk {
	chunks := make([]text.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = text.Chunk{Content: c, Index: i}
	}
	return chunks
}

func TestChain_Run_SingleChunk(t *testing.T) {
	llm := &echoLLM{}
	chain := NewChain(llm)

	got, err := chain.Run(context.Background(), chunksOf("only chunk"))
	require.NoError(t, err)
	assert.Equal(t, "summary-1", got)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "only chunk")
	assert.Contains(t, llm.prompts[0], "concise summary")
}

func TestChain_Run_RefinesInOrder(t *testing.T) {
	llm := &echoLLM{}
	chain := NewChain(llm)

	got, err := chain.Run(context.Background(), chunksOf("chunk-a", "chunk-b", "chunk-c"))
	require.NoError(t, err)
	assert.Equal(t, "summary-3", got)

	require.Len(t, llm.prompts, 3)

	// Initial call sees only chunk 0.
	assert.Contains(t, llm.prompts[0], "chunk-a")
	assert.NotContains(t, llm.prompts[0], "chunk-b")

	// Refine call k receives refine call k-1's output as the prior summary.
	assert.Contains(t, llm.prompts[1], "summary-1")
	assert.Contains(t, llm.prompts[1], "chunk-b")
	assert.Contains(t, llm.prompts[2], "summary-2")
	assert.Contains(t, llm.prompts[2], "chunk-c")

	// Chunks are consumed in input order.
	order := []string{"chunk-a", "chunk-b", "chunk-c"}
	for i, prompt := range llm.prompts {
		assert.True(t, strings.Contains(prompt, order[i]), "prompt %d should carry %s", i, order[i])
	}
}

func TestChain_Run_AbortsOnFailure(t *testing.T) {
	llm := &echoLLM{failAt: 2}
	chain := NewChain(llm)

	_, err := chain.Run(context.Background(), chunksOf("one", "two", "three"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refine step 1")

	// The chain stops at the failing call; the third chunk is never sent.
	assert.Len(t, llm.prompts, 2)
}

func TestChain_Run_NoChunks(t *testing.T) {
	chain := NewChain(&echoLLM{})
	_, err := chain.Run(context.Background(), nil)
	assert.Error(t, err)
}
