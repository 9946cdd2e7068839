package model

import "strings"

// PlaylistQueryParam marks a URL that yt-dlp will expand into many videos.
const PlaylistQueryParam = "list="

// PlaylistEntry is one video listed in a playlist.
type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist is a lightweight preview of a playlist URL, fetched so the user
// knows how many videos a single click will download.
type Playlist struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Entries     []PlaylistEntry `json:"entries"`
	TotalVideos int             `json:"total_videos"`
}

// NewPlaylist creates an empty playlist preview
func NewPlaylist(id, url string) *Playlist {
	return &Playlist{
		ID:      id,
		URL:     url,
		Entries: make([]PlaylistEntry, 0),
	}
}

// AddEntry appends a video and keeps TotalVideos in sync
func (p *Playlist) AddEntry(entry PlaylistEntry) {
	p.Entries = append(p.Entries, entry)
	p.TotalVideos = len(p.Entries)
}

// IsPlaylistURL reports whether url carries a playlist id.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistQueryParam)
}
