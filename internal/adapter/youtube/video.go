package youtube

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrNoVideoID = errors.New("no video id found in url")

// Patterns are tried in order; the first match wins. Each captures exactly
// the 11-character video id.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
}

// ExtractVideoID parses an 11-character video id out of a YouTube URL.
// Supported shapes: watch?v=ID, /ID path segments, embed/ID and youtu.be/ID.
func ExtractVideoID(rawURL string) (string, error) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoVideoID, rawURL)
}

// ThumbnailURL derives the maxres thumbnail for a video id. Purely
// deterministic; no network call and no existence check.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
