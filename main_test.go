package main

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-gui/internal/config"
	"github.com/ytget/ytdl-gui/internal/model"
)

func TestApplyArgs(t *testing.T) {
	state := model.NewAppState()
	state.OutputDir = "/home/user/Downloads"

	err := applyArgs(Args{
		URL:         " https://youtu.be/abc\n",
		Output:      "/tmp/out",
		AudioOnly:   true,
		Quality:     "720p",
		AudioFormat: "WAV",
	}, state)
	require.NoError(t, err)

	assert.Equal(t, "https://youtu.be/abc", state.VideoURL)
	assert.Equal(t, "/tmp/out", state.OutputDir)
	assert.True(t, state.AudioOnly)
	assert.Equal(t, model.Q720, state.PreferredQuality)
	assert.Equal(t, model.DefaultVideoFormat, state.VideoFormat)
	assert.Equal(t, model.AudioWAV, state.AudioFormat)
}

func TestApplyArgs_Empty(t *testing.T) {
	state := model.NewAppState()
	require.NoError(t, applyArgs(Args{}, state))
	assert.Equal(t, model.NewAppState(), state)
}

func TestApplyArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args Args
	}{
		{"quality", Args{Quality: "999p"}},
		{"video format", Args{VideoFormat: "avi"}},
		{"audio format", Args{AudioFormat: "flac"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, applyArgs(tt.args, model.NewAppState()))
		})
	}
}

func TestLoadState_CreatesDownloadDirectory(t *testing.T) {
	settings := config.NewSettings(test.NewApp())
	dir := filepath.Join(t.TempDir(), "nested", "downloads")

	state, err := loadState(settings, Args{Output: dir})
	require.NoError(t, err)

	assert.Equal(t, dir, state.OutputDir)
	assert.DirExists(t, dir)
}

func TestLoadState_InvalidArgs(t *testing.T) {
	settings := config.NewSettings(test.NewApp())

	_, err := loadState(settings, Args{Quality: "999p"})
	assert.Error(t, err)
}
