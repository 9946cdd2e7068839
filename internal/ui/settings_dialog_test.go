package ui

import (
	"context"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/ytdl-gui/internal/config"
)

type fakeTools struct {
	path         string
	allowInstall bool
	configured   int
}

func (f *fakeTools) Resolve(context.Context) (string, error) { return f.path, nil }

func (f *fakeTools) Configure(path string, allowInstall bool) {
	f.path = path
	f.allowInstall = allowInstall
	f.configured++
}

func TestSettingsDialog_Save(t *testing.T) {
	app := test.NewApp()
	settings := config.NewSettings(app)
	settings.SetDownloadDirectory(t.TempDir())
	window := app.NewWindow("")

	saved := false
	sd := NewSettingsDialog(settings, window, NewLocalization(), &fakeTools{}, func() { saved = true })
	sd.Show()

	newDir := filepath.Join(t.TempDir(), "videos")
	sd.downloadDirEntry.SetText(newDir)
	sd.ytdlpPathEntry.SetText("/opt/yt-dlp")
	sd.autoInstallCheck.SetChecked(false)
	sd.languageSelect.SetSelected("Português")
	sd.onSave(true)

	assert.True(t, saved)
	assert.DirExists(t, newDir)
	assert.Equal(t, newDir, settings.GetDownloadDirectory())
	assert.Equal(t, "/opt/yt-dlp", settings.GetYTDLPPath())
	assert.False(t, settings.GetAutoInstall())
	assert.Equal(t, LangPortug, settings.GetLanguage())
}

func TestSettingsDialog_CancelRestoresTools(t *testing.T) {
	app := test.NewApp()
	settings := config.NewSettings(app)
	settings.SetYTDLPPath("/usr/bin/yt-dlp")
	window := app.NewWindow("")

	tools := &fakeTools{}
	sd := NewSettingsDialog(settings, window, NewLocalization(), tools, nil)
	sd.Show()
	sd.ytdlpPathEntry.SetText("/tmp/other")
	sd.tools.Configure(sd.ytdlpPathEntry.Text, true)
	sd.onSave(false)

	assert.Equal(t, "/usr/bin/yt-dlp", tools.path)
	assert.Equal(t, "/usr/bin/yt-dlp", settings.GetYTDLPPath())
}

func TestRootUI_SettingsSavedAppliesToServices(t *testing.T) {
	tools := &fakeTools{}
	ui, fake := newTestUI(t, Services{Tools: tools})

	dir := t.TempDir()
	ui.settings.SetDownloadDirectory(dir)
	ui.settings.SetYTDLPPath("/opt/yt-dlp")
	ui.settings.SetLanguage(LangRussian)
	ui.onSettingsSaved()

	assert.Equal(t, dir, fake.dir)
	assert.Equal(t, dir, ui.state.OutputDir)
	assert.Equal(t, "/opt/yt-dlp", tools.path)
	assert.Equal(t, "Загрузчик YouTube", ui.heading.Text)
}
