package ui

import (
	"context"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytdl-gui/internal/config"
	"github.com/ytget/ytdl-gui/internal/platform"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	tools        ToolLocator
	onSaved      func()
	dialog       *dialog.ConfirmDialog

	// UI components
	downloadDirEntry *widget.Entry
	ytdlpPathEntry   *widget.Entry
	autoInstallCheck *widget.Check
	languageSelect   *widget.Select
	toolStatusLabel  *widget.Label
	checkBtn         *widget.Button

	languageCodes map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog. onSaved runs on the UI
// goroutine after the values are stored.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, tools ToolLocator, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		tools:        tools,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// yt-dlp executable
	sd.ytdlpPathEntry = widget.NewEntry()
	sd.ytdlpPathEntry.SetPlaceHolder(l.GetText(KeyYTDLPPathHint))
	browseExeBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseExecutable)
	ytdlpRow := container.NewBorder(nil, nil, nil, browseExeBtn, sd.ytdlpPathEntry)

	sd.autoInstallCheck = widget.NewCheck(l.GetText(KeyAutoInstall), nil)

	sd.toolStatusLabel = widget.NewLabel("")
	sd.toolStatusLabel.Wrapping = fyne.TextWrapWord
	sd.checkBtn = widget.NewButton(l.GetText(KeyCheckYTDLP), sd.onCheckTool)
	if sd.tools == nil {
		sd.checkBtn.Disable()
	}
	toolRow := container.NewBorder(nil, nil, nil, sd.checkBtn, sd.toolStatusLabel)

	// Language selection
	sd.languageCodes = map[string]string{l.GetText(KeySystemDefault): LangSystem}
	languageOptions := []string{l.GetText(KeySystemDefault)}
	for _, opt := range l.GetAvailableLanguages() {
		sd.languageCodes[opt.Name] = opt.Code
		languageOptions = append(languageOptions, opt.Name)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(l.GetText(KeyYTDLPPath), ytdlpRow),
		widget.NewFormItem("", sd.autoInstallCheck),
		widget.NewFormItem("", toolRow),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.ytdlpPathEntry.SetText(sd.settings.GetYTDLPPath())
	sd.autoInstallCheck.SetChecked(sd.settings.GetAutoInstall())
	sd.toolStatusLabel.SetText("")

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onBrowseExecutable lets the user pick the yt-dlp binary
func (sd *SettingsDialog) onBrowseExecutable() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		sd.ytdlpPathEntry.SetText(rc.URI().Path())
	}, sd.window)
}

// onCheckTool resolves yt-dlp with the values currently in the form and
// reports its version. Resolution may download yt-dlp, so it runs off the UI
// goroutine.
func (sd *SettingsDialog) onCheckTool() {
	if sd.tools == nil {
		return
	}
	l := sd.localization
	sd.tools.Configure(sd.ytdlpPathEntry.Text, sd.autoInstallCheck.Checked)
	sd.toolStatusLabel.SetText(l.GetText(KeyCheckingYTDLP))
	sd.checkBtn.Disable()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ToolCheckTimeout)
		defer cancel()

		message := l.GetText(KeyYTDLPMissing)
		exe, err := sd.tools.Resolve(ctx)
		if err == nil {
			var version string
			version, err = platform.ToolVersion(ctx, exe)
			if err == nil {
				message = fmt.Sprintf(l.GetText(KeyYTDLPVersion), version, exe)
			}
		}
		if err != nil {
			log.Printf("yt-dlp check failed: %v", err)
			message += ": " + err.Error()
		}

		fyne.Do(func() {
			sd.toolStatusLabel.SetText(message)
			sd.checkBtn.Enable()
		})
	}()
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		// a Check may have pointed the resolver at unsaved values
		if sd.tools != nil {
			sd.tools.Configure(sd.settings.GetYTDLPPath(), sd.settings.GetAutoInstall())
		}
		return
	}

	// Validate and save download directory
	downloadDir := sd.downloadDirEntry.Text
	if downloadDir != "" {
		if err := platform.CreateDirectoryIfNotExists(downloadDir); err != nil {
			log.Printf("Failed to create download directory %s: %v", downloadDir, err)
			dialog.ShowError(err, sd.window)
			return
		}
		sd.settings.SetDownloadDirectory(downloadDir)
	}

	sd.settings.SetYTDLPPath(sd.ytdlpPathEntry.Text)
	sd.settings.SetAutoInstall(sd.autoInstallCheck.Checked)

	// Save language
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	log.Printf("Settings saved: dir=%s ytdlp=%q auto_install=%v lang=%s",
		sd.settings.GetDownloadDirectory(), sd.settings.GetYTDLPPath(), sd.settings.GetAutoInstall(), sd.settings.GetLanguage())

	if sd.onSaved != nil {
		sd.onSaved()
	}

	// Show confirmation
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
