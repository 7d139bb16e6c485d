package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tubebrief/internal/adapter/youtube"
	"tubebrief/internal/text"
)

// Summary is a persisted summarization run.
type Summary struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	URL       string    `json:"url"`
	Markdown  string    `json:"markdown"`
	CreatedAt time.Time `json:"created_at"`
}

// Result is what one pipeline run hands back to the handler.
type Result struct {
	VideoID      string
	URL          string
	ThumbnailURL string
	Markdown     string
}

type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

type Chunker interface {
	Split(ctx context.Context, text string) ([]text.Chunk, error)
}

type Repository interface {
	Save(ctx context.Context, s *Summary) error
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
}

type Service struct {
	fetcher TranscriptFetcher
	chunker Chunker
	chain   *Chain
	repo    Repository
}

func NewService(fetcher TranscriptFetcher, chunker Chunker, chain *Chain, repo Repository) *Service {
	return &Service{fetcher: fetcher, chunker: chunker, chain: chain, repo: repo}
}

// Summarize runs the full pipeline for one URL: extract the video id, fetch
// the transcript, chunk it semantically and refine a summary over the chunks
// in order. The pipeline is strictly sequential; each refine step depends on
// the previous one's output.
func (s *Service) Summarize(ctx context.Context, rawURL string) (*Result, error) {
	videoID, err := youtube.ExtractVideoID(rawURL)
	if err != nil {
		return nil, err
	}

	transcript, err := s.fetcher.Transcript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript: %w", err)
	}

	chunks, err := s.chunker.Split(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("chunk transcript: %w", err)
	}
	slog.InfoContext(ctx, "transcript chunked", "video_id", videoID, "chunks", len(chunks))

	markdown, err := s.chain.Run(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	// History is best-effort; a storage hiccup must not fail the request.
	if s.repo != nil {
		record := &Summary{VideoID: videoID, URL: rawURL, Markdown: markdown}
		if err := s.repo.Save(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to save summary history", "error", err, "video_id", videoID)
		}
	}

	return &Result{
		VideoID:      videoID,
		URL:          rawURL,
		ThumbnailURL: youtube.ThumbnailURL(videoID),
		Markdown:     markdown,
	}, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecent(ctx, limit)
}
