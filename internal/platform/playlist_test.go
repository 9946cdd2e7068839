package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-gui/internal/model"
)

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch with list", "https://www.youtube.com/watch?v=abc&list=PL123", "PL123"},
		{"playlist page", "https://www.youtube.com/playlist?list=PL456&si=x", "PL456"},
		{"no list", "https://www.youtube.com/watch?v=abc", ""},
		{"unparseable url", "http://[bad/?list=PL789&x=1", "PL789"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlaylistID(tt.url))
		})
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.PlaylistEntry
		want    string
	}{
		{"empty", nil, DefaultPlaylistName},
		{"single", []model.PlaylistEntry{{Title: "Intro"}}, "Intro Playlist"},
		{
			"long common prefix",
			[]model.PlaylistEntry{{Title: "Go Course Part 1"}, {Title: "Go Course Part 2"}},
			"Go Course Part Playlist",
		},
		{
			"short common prefix",
			[]model.PlaylistEntry{{Title: "Cats"}, {Title: "Cars"}},
			"Cats Playlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaylistTitle(tt.entries))
		})
	}
}

func TestCommonPrefix_MultiByte(t *testing.T) {
	assert.Equal(t, "Привет ", commonPrefix("Привет мир", "Привет всем"))
	assert.Equal(t, "", commonPrefix("é", "è"))
}

func TestPlaylistInspector_Inspect(t *testing.T) {
	p := NewPlaylistInspector()
	p.fetch = func(ctx context.Context, id string) ([]PlaylistItem, error) {
		assert.Equal(t, "PL123", id)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return []PlaylistItem{
			{VideoID: "v1", Title: "Lecture series: one"},
			{VideoID: "v2", Title: "Lecture series: two"},
		}, nil
	}

	pl, err := p.Inspect(context.Background(), "https://www.youtube.com/watch?v=v1&list=PL123")
	require.NoError(t, err)
	assert.Equal(t, "PL123", pl.ID)
	assert.Equal(t, 2, pl.TotalVideos)
	assert.Equal(t, "Lecture series: Playlist", pl.Title)
	assert.Equal(t, "https://www.youtube.com/watch?v=v2", pl.Entries[1].URL)
}

func TestPlaylistInspector_Errors(t *testing.T) {
	p := NewPlaylistInspector()
	p.SetTimeout(time.Second)

	_, err := p.Inspect(context.Background(), "https://www.youtube.com/watch?v=v1")
	assert.True(t, errors.Is(err, ErrNotPlaylist))

	boom := errors.New("boom")
	p.fetch = func(context.Context, string) ([]PlaylistItem, error) { return nil, boom }
	_, err = p.Inspect(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	assert.True(t, errors.Is(err, boom))
}
