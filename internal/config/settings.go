package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/ytdl-gui/internal/model"
	"github.com/ytget/ytdl-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir = "download_directory"
	KeyQuality     = "preferred_quality"
	KeyVideoFormat = "video_format"
	KeyAudioFormat = "audio_format"
	KeyAudioOnly   = "audio_only"
	KeyYTDLPPath   = "ytdlp_path"
	KeyAutoInstall = "ytdlp_auto_install"
	KeyLanguage    = "app_language"
)

// Default values
const (
	DefaultLanguage    = "system"
	DefaultAutoInstall = true
	FallbackDirName    = "ytdl-gui"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), FallbackDirName)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQuality returns the last selected quality
func (s *Settings) GetQuality() model.Quality {
	q := model.Quality(s.app.Preferences().IntWithFallback(KeyQuality, int(model.DefaultQuality)))
	if !q.Valid() {
		return model.DefaultQuality
	}
	return q
}

// SetQuality stores the selected quality
func (s *Settings) SetQuality(q model.Quality) {
	if !q.Valid() {
		q = model.DefaultQuality
	}
	s.app.Preferences().SetInt(KeyQuality, int(q))
}

// GetVideoFormat returns the last selected video container
func (s *Settings) GetVideoFormat() model.VideoFormat {
	f, err := model.ParseVideoFormat(s.app.Preferences().String(KeyVideoFormat))
	if err != nil {
		return model.DefaultVideoFormat
	}
	return f
}

// SetVideoFormat stores the selected video container
func (s *Settings) SetVideoFormat(f model.VideoFormat) {
	s.app.Preferences().SetString(KeyVideoFormat, string(f))
}

// GetAudioFormat returns the last selected audio format
func (s *Settings) GetAudioFormat() model.AudioFormat {
	f, err := model.ParseAudioFormat(s.app.Preferences().String(KeyAudioFormat))
	if err != nil {
		return model.DefaultAudioFormat
	}
	return f
}

// SetAudioFormat stores the selected audio format
func (s *Settings) SetAudioFormat(f model.AudioFormat) {
	s.app.Preferences().SetString(KeyAudioFormat, string(f))
}

// GetAudioOnly returns whether audio-only was last checked
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().Bool(KeyAudioOnly)
}

// SetAudioOnly stores the audio-only checkbox
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetYTDLPPath returns the user-provided yt-dlp path, empty for PATH lookup
func (s *Settings) GetYTDLPPath() string {
	return s.app.Preferences().String(KeyYTDLPPath)
}

// SetYTDLPPath sets the yt-dlp executable path
func (s *Settings) SetYTDLPPath(path string) {
	s.app.Preferences().SetString(KeyYTDLPPath, path)
}

// GetAutoInstall returns whether a managed yt-dlp may be downloaded
func (s *Settings) GetAutoInstall() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoInstall, DefaultAutoInstall)
}

// SetAutoInstall sets whether a managed yt-dlp may be downloaded
func (s *Settings) SetAutoInstall(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoInstall, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// LoadState builds the initial AppState from the stored selections
func (s *Settings) LoadState() *model.AppState {
	state := model.NewAppState()
	state.PreferredQuality = s.GetQuality()
	state.VideoFormat = s.GetVideoFormat()
	state.AudioFormat = s.GetAudioFormat()
	state.AudioOnly = s.GetAudioOnly()
	state.OutputDir = s.GetDownloadDirectory()
	return state
}

// SaveSelections stores the option widgets' current values
func (s *Settings) SaveSelections(state *model.AppState) {
	s.SetQuality(state.PreferredQuality)
	s.SetVideoFormat(state.VideoFormat)
	s.SetAudioFormat(state.AudioFormat)
	s.SetAudioOnly(state.AudioOnly)
}
