package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNoCaptions       = errors.New("video has no captions")
	ErrVideoUnavailable = errors.New("video unavailable")
)

const (
	defaultBaseURL = "https://www.youtube.com"
	browserUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// playerResponseMarker marks the start of the player response JSON
	// embedded in the watch page HTML.
	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 6 << 20
	maxTimedTextBytes = 512 << 10
)

// Client fetches video transcripts by scraping the watch page for
// ytInitialPlayerResponse and downloading the referenced timedtext XML.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

type playerResponse struct {
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// Transcript returns the full caption text for a video, space-joined in
// caption order. Failures are typed: ErrNoCaptions when the video carries no
// caption tracks, ErrVideoUnavailable when playback is blocked.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	slog.InfoContext(ctx, "fetching transcript", "video_id", videoID)

	player, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return "", err
	}

	if player.Captions == nil {
		if s := player.PlayabilityStatus; s != nil && s.Status != "" && s.Status != "OK" {
			if s.Reason != "" {
				return "", fmt.Errorf("%w: %s", ErrVideoUnavailable, s.Reason)
			}
			return "", ErrVideoUnavailable
		}
		return "", ErrNoCaptions
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", ErrNoCaptions
	}

	text, err := c.fetchTimedText(ctx, pickTrack(tracks).BaseURL)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrNoCaptions
	}

	slog.InfoContext(ctx, "transcript fetched", "video_id", videoID, "length", len(text))
	return text, nil
}

func (c *Client) fetchPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	watchURL := c.baseURL + "/watch?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVideoUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: player response not found", ErrVideoUnavailable)
	}

	jsonData := extractJSONObject(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, fmt.Errorf("%w: malformed player response", ErrVideoUnavailable)
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

func (c *Client) fetchTimedText(ctx context.Context, trackURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("timedtext status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return "", err
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext xml: %w", err)
	}

	var sb strings.Builder
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// pickTrack prefers a manual English track, then any manual track, then
// whatever comes first.
func pickTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if t.Kind != "asr" && strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	for _, t := range tracks {
		if t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// extractJSONObject returns the balanced JSON object at the start of data,
// or nil when no complete object is present. String escapes are honored so
// braces inside string values do not confuse the scan.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, b := range data {
		if escaped {
			escaped = false
			continue
		}
		switch b {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[:i+1]
				}
			}
		}
	}
	return nil
}
