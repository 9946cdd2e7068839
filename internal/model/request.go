package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyURL is returned when a request carries no URL.
var ErrEmptyURL = errors.New("video url is empty")

// DownloadRequest is an immutable snapshot of the user's selections taken
// when the download button is pressed.
type DownloadRequest struct {
	URL         string
	Quality     Quality
	VideoFormat VideoFormat
	AudioFormat AudioFormat
	AudioOnly   bool

	// OutputDir is passed to yt-dlp as the download path when set.
	OutputDir string
}

// Validate checks the URL and fills zero-valued options with defaults.
func (r *DownloadRequest) Validate() error {
	r.URL = CleanURL(r.URL)
	if r.URL == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	if !r.Quality.Valid() {
		r.Quality = DefaultQuality
	}
	if r.VideoFormat == "" {
		r.VideoFormat = DefaultVideoFormat
	}
	if r.AudioFormat == "" {
		r.AudioFormat = DefaultAudioFormat
	}
	return nil
}

// CleanURL strips control whitespace pasted along with a link.
func CleanURL(raw string) string {
	cleaned := strings.ReplaceAll(raw, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}
