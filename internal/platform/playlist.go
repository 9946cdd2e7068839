package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/ytdl-gui/internal/model"
)

// ErrNotPlaylist is returned for URLs without a list= parameter
var ErrNotPlaylist = errors.New("not a playlist URL")

// Timeout constants
const (
	DefaultPreviewTimeout = 30 * time.Second
)

// URL parameters and templates
const (
	PlaylistParam           = "list"
	ParamSeparator          = "&"
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	MinPrefixLength     = 10
	PlaylistSuffix      = " Playlist"
)

// PlaylistItem is the subset of a listed video the preview needs
type PlaylistItem struct {
	VideoID string
	Title   string
}

// PlaylistFetcher lists the videos of a playlist id
type PlaylistFetcher func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// PlaylistInspector previews playlists before yt-dlp downloads them
type PlaylistInspector struct {
	timeout time.Duration
	fetch   PlaylistFetcher
}

// NewPlaylistInspector creates an inspector backed by the ytdlp library
func NewPlaylistInspector() *PlaylistInspector {
	return &PlaylistInspector{
		timeout: DefaultPreviewTimeout,
		fetch:   fetchPlaylistItems,
	}
}

// SetTimeout sets the timeout for preview requests
func (p *PlaylistInspector) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Inspect fetches the playlist behind rawURL
func (p *PlaylistInspector) Inspect(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotPlaylist, rawURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	playlist := model.NewPlaylist(playlistID, rawURL)
	for _, it := range items {
		playlist.AddEntry(model.PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	playlist.Title = PlaylistTitle(playlist.Entries)

	return playlist, nil
}

func fetchPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// ExtractPlaylistID returns the list= value of a URL, or ""
func ExtractPlaylistID(rawURL string) string {
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		if id := u.Query().Get(PlaylistParam); id != "" {
			return id
		}
	}

	// fall back to plain splitting for URLs url.Parse rejects
	parts := strings.SplitN(rawURL, PlaylistParam+"=", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.Split(parts[1], ParamSeparator)[0]
}

// PlaylistTitle guesses a display title from the first entries
func PlaylistTitle(entries []model.PlaylistEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// commonPrefix returns the shared prefix of s1 and s2 without splitting a rune
func commonPrefix(s1, s2 string) string {
	end := 0
	for i, r := range s1 {
		if i >= len(s2) || !strings.HasPrefix(s2[i:], string(r)) {
			break
		}
		end = i + len(string(r))
	}
	return s1[:end]
}
