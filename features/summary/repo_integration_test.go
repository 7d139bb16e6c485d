package summary_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubebrief/features/summary"
	"tubebrief/internal/testutils"
)

func TestSummaryRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	s := testutils.NewIntegrationSuite(t)
	s.Setup()
	defer s.Teardown()

	repo := summary.NewPostgresRepo(s.DB)
	ctx := context.Background()

	first := &summary.Summary{
		VideoID:  "dQw4w9WgXcQ",
		URL:      "https://youtu.be/dQw4w9WgXcQ",
		Markdown: "# First summary",
	}
	err := repo.Save(ctx, first)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &summary.Summary{
		VideoID:  "abcdefghijk",
		URL:      "https://www.youtube.com/watch?v=abcdefghijk",
		Markdown: "# Second summary",
	}
	require.NoError(t, repo.Save(ctx, second))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	limited, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "abcdefghijk", limited[0].VideoID)
	assert.Equal(t, "# Second summary", limited[0].Markdown)
}
