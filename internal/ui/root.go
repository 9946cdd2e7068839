package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/ytdl-gui/internal/config"
	"github.com/ytget/ytdl-gui/internal/download"
	"github.com/ytget/ytdl-gui/internal/model"
	"github.com/ytget/ytdl-gui/internal/platform"
)

// ToolLocator finds yt-dlp and accepts new lookup settings
type ToolLocator interface {
	Resolve(ctx context.Context) (string, error)
	Configure(path string, allowInstall bool)
}

// PlaylistPreviewer fetches playlist metadata for the status line
type PlaylistPreviewer interface {
	Inspect(ctx context.Context, url string) (*model.Playlist, error)
}

// Services bundles the backends the main window talks to. Playlists and
// Tools may be nil.
type Services struct {
	Downloader download.Downloader
	Playlists  PlaylistPreviewer
	Tools      ToolLocator
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	state        *model.AppState
	downloadSvc  download.Downloader
	playlists    PlaylistPreviewer
	tools        ToolLocator
	settings     *config.Settings
	localization *Localization

	heading        *widget.Label
	urlEntry       *widget.Entry
	downloadBtn    *widget.Button
	cancelBtn      *widget.Button
	qualityLabel   *widget.Label
	videoLabel     *widget.Label
	audioLabel     *widget.Label
	qualityRadio   *widget.RadioGroup
	videoRadio     *widget.RadioGroup
	audioRadio     *widget.RadioGroup
	audioOnlyCheck *widget.Check
	progressBar    *widget.ProgressBar
	statusLabel    *widget.Label
	detailLabel    *widget.Label

	status   binding.String
	progress binding.Float

	// ID of the task whose updates drive the window
	activeTaskID  string
	previewCancel context.CancelFunc

	// runAsync starts background work; replaced in tests
	runAsync func(func())
}

// NewRootUI creates and initializes the main UI. A nil state is loaded from
// settings.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, state *model.AppState, svc Services) *RootUI {
	if state == nil {
		state = settings.LoadState()
	}

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		state:        state,
		downloadSvc:  svc.Downloader,
		playlists:    svc.Playlists,
		tools:        svc.Tools,
		settings:     settings,
		localization: localization,
		status:       binding.NewString(),
		progress:     binding.NewFloat(),
		runAsync:     func(f func()) { go f() },
	}

	window.SetTitle(WindowTitle)

	// Set up callback for download updates
	ui.downloadSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// SetURL prefills the URL entry
func (ui *RootUI) SetURL(url string) {
	ui.urlEntry.SetText(url)
}

// State returns the state the window renders
func (ui *RootUI) State() *model.AppState {
	return ui.state
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.createMenu()

	ui.heading = widget.NewLabelWithStyle(l.GetText(KeyHeading), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.heading.SizeName = theme.SizeNameHeadingText

	// Create URL entry
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.SetText(ui.state.VideoURL)
	ui.urlEntry.OnChanged = func(s string) {
		ui.state.VideoURL = s
	}
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton(l.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton(l.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()

	urlRow := container.NewBorder(nil, nil, nil, container.NewHBox(ui.downloadBtn, ui.cancelBtn), ui.urlEntry)

	// Option groups
	ui.qualityRadio = widget.NewRadioGroup(qualityOptions(), func(s string) {
		if q, err := model.ParseQuality(s); err == nil {
			ui.state.PreferredQuality = q
		}
	})
	ui.qualityRadio.Horizontal = true
	ui.qualityRadio.Required = true
	ui.qualityRadio.SetSelected(ui.state.PreferredQuality.String())

	ui.videoRadio = widget.NewRadioGroup(videoFormatOptions(), func(s string) {
		if f, err := model.ParseVideoFormat(s); err == nil {
			ui.state.VideoFormat = f
		}
	})
	ui.videoRadio.Horizontal = true
	ui.videoRadio.Required = true
	ui.videoRadio.SetSelected(ui.state.VideoFormat.String())

	ui.audioRadio = widget.NewRadioGroup(audioFormatOptions(), func(s string) {
		if f, err := model.ParseAudioFormat(s); err == nil {
			ui.state.AudioFormat = f
		}
	})
	ui.audioRadio.Horizontal = true
	ui.audioRadio.Required = true
	ui.audioRadio.SetSelected(ui.state.AudioFormat.String())

	ui.audioOnlyCheck = widget.NewCheck(l.GetText(KeyAudioOnly), func(checked bool) {
		ui.state.AudioOnly = checked
	})
	ui.audioOnlyCheck.SetChecked(ui.state.AudioOnly)

	ui.qualityLabel = widget.NewLabel(l.GetText(KeyQuality))
	ui.videoLabel = widget.NewLabel(l.GetText(KeyVideoFormat))
	ui.audioLabel = widget.NewLabel(l.GetText(KeyAudioFormat))

	options := container.New(layout.NewFormLayout(),
		ui.qualityLabel, container.NewHScroll(ui.qualityRadio),
		ui.videoLabel, ui.videoRadio,
		ui.audioLabel, ui.audioRadio,
		layout.NewSpacer(), ui.audioOnlyCheck,
	)

	// Progress and status
	ui.progressBar = widget.NewProgressBarWithData(ui.progress)
	ui.statusLabel = widget.NewLabelWithData(ui.status)
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.detailLabel = widget.NewLabel("")
	ui.detailLabel.Truncation = fyne.TextTruncateEllipsis
	ui.detailLabel.Importance = widget.LowImportance

	content := container.NewVBox(
		ui.heading,
		urlRow,
		options,
		ui.progressBar,
		ui.statusLabel,
		ui.detailLabel,
	)

	ui.window.SetContent(container.NewPadded(content))

	// UI setup completed
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings)
	openFolderItem := fyne.NewMenuItem(l.GetText(KeyOpenFolder), ui.onOpenFolder)
	quitItem := fyne.NewMenuItem(l.GetText(KeyQuit), ui.app.Quit)
	quitItem.IsQuit = true

	editMenu := fyne.NewMenu(l.GetText(KeyEdit),
		fyne.NewMenuItem(l.GetText(KeyCut), ui.onCut),
		fyne.NewMenuItem(l.GetText(KeyCopy), ui.onCopy),
		fyne.NewMenuItem(l.GetText(KeyPaste), ui.onPaste),
	)

	// Language submenu
	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	for _, opt := range l.GetAvailableLanguages() {
		langCode := opt.Code
		langItem := fyne.NewMenuItem(opt.Name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		langItem.Checked = l.GetCurrentLanguage() == langCode
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile), settingsItem, openFolderItem, fyne.NewMenuItemSeparator(), quitItem),
		editMenu,
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.heading.SetText(l.GetText(KeyHeading))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.downloadBtn.SetText(l.GetText(KeyDownload))
	ui.cancelBtn.SetText(l.GetText(KeyCancel))
	ui.qualityLabel.SetText(l.GetText(KeyQuality))
	ui.videoLabel.SetText(l.GetText(KeyVideoFormat))
	ui.audioLabel.SetText(l.GetText(KeyAudioFormat))
	ui.audioOnlyCheck.Text = l.GetText(KeyAudioOnly)
	ui.audioOnlyCheck.Refresh()
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	if ui.state.Busy {
		log.Printf("Download already in progress, ignoring click")
		return
	}

	ui.state.VideoURL = ui.urlEntry.Text
	req, ok := ui.state.Begin()
	if !ok {
		return
	}

	task, err := ui.downloadSvc.Submit(req)
	if err != nil {
		ui.state.Abort()
		switch {
		case errors.Is(err, download.ErrBusy):
			log.Printf("Download service busy, ignoring click")
		case errors.Is(err, model.ErrEmptyURL):
			ui.setStatus(ui.localization.GetText(KeyPleaseEnterURL))
		default:
			log.Printf("Rejected download request: %v", err)
			ui.setStatus(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		}
		return
	}

	log.Printf("Task submitted: id=%s url=%s", task.ID, task.URL())

	ui.activeTaskID = task.ID
	ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyAttempting), task.URL()))
	ui.setProgress(0)
	ui.detailLabel.SetText("")
	ui.setBusy(true)
	ui.settings.SaveSelections(ui.state)

	if model.IsPlaylistURL(task.URL()) {
		ui.previewPlaylist(task.ID, task.URL())
	}
}

// onCancelClick terminates the running download
func (ui *RootUI) onCancelClick() {
	if err := ui.downloadSvc.Cancel(); err != nil {
		log.Printf("Cancel failed: %v", err)
		return
	}
	ui.cancelBtn.Disable()
	ui.setStatus(ui.localization.GetText(KeyStoppingDownload))
}

// previewPlaylist replaces the status line with the playlist title and size
// once they are known
func (ui *RootUI) previewPlaylist(taskID, url string) {
	if ui.playlists == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.previewCancel = cancel

	ui.runAsync(func() {
		defer cancel()
		playlist, err := ui.playlists.Inspect(ctx, url)
		if err != nil {
			log.Printf("Playlist preview failed: %v", err)
			return
		}
		log.Printf("Playlist parsed successfully: %s with %d videos", playlist.Title, playlist.TotalVideos)

		fyne.Do(func() {
			if ui.activeTaskID != taskID || !ui.state.Busy {
				return
			}
			ui.setStatus(fmt.Sprintf(ui.localization.GetText(KeyAttemptingPlaylist), playlist.Title, playlist.TotalVideos))
		})
	})
}

// onTaskUpdate handles task updates from the download service. It is called
// on the worker goroutine.
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.applyTaskUpdate(task)
	})
}

// applyTaskUpdate renders a task update on the UI goroutine
func (ui *RootUI) applyTaskUpdate(task *model.DownloadTask) {
	if task.ID != ui.activeTaskID {
		log.Printf("Ignoring update for stale task %s", task.ID)
		return
	}

	if task.Outcome != model.OutcomeUnknown {
		ui.finishTask(task)
		return
	}

	if !ui.state.Busy {
		return
	}

	if task.Status == model.TaskStatusStopping {
		ui.setStatus(ui.localization.GetText(KeyStoppingDownload))
	}
	ui.state.SetProgress(task.Progress)
	ui.setProgress(ui.state.Progress)
	ui.detailLabel.SetText(formatTaskDetails(task))
}

// finishTask reports the outcome once per download
func (ui *RootUI) finishTask(task *model.DownloadTask) {
	if !ui.state.Busy {
		return
	}

	if ui.previewCancel != nil {
		ui.previewCancel()
		ui.previewCancel = nil
	}

	ui.state.Finish(task.Outcome)
	ui.setProgress(ui.state.Progress)
	ui.setStatus(ui.outcomeMessage(task.Outcome))
	ui.setBusy(false)

	switch task.Outcome {
	case model.OutcomeSuccess:
		ui.detailLabel.SetText(task.OutputPath)
		ui.app.SendNotification(&fyne.Notification{
			Title:   ui.localization.GetText(KeyDownloadCompleted),
			Content: task.GetDisplayTitle(),
		})
	case model.OutcomeFailure:
		ui.detailLabel.SetText(task.LastError)
	default:
		ui.detailLabel.SetText("")
	}

	log.Printf("Task %s finished with outcome %s", task.ID, task.Outcome)
}

// outcomeMessage returns the status line for a finished download
func (ui *RootUI) outcomeMessage(outcome model.Outcome) string {
	switch outcome {
	case model.OutcomeSuccess:
		return ui.localization.GetText(KeySucceeded)
	case model.OutcomeTerminated:
		return ui.localization.GetText(KeyTerminated)
	default:
		return ui.localization.GetText(KeyFailed)
	}
}

func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
		return
	}
	ui.downloadBtn.Enable()
	ui.cancelBtn.Disable()
}

func (ui *RootUI) setStatus(text string) {
	ui.state.Output = text
	if err := ui.status.Set(text); err != nil {
		log.Printf("Failed to set status: %v", err)
	}
}

func (ui *RootUI) setProgress(p float64) {
	if err := ui.progress.Set(p); err != nil {
		log.Printf("Failed to set progress: %v", err)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, ui.tools, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies stored settings to the running services
func (ui *RootUI) onSettingsSaved() {
	dir := ui.settings.GetDownloadDirectory()
	ui.state.OutputDir = dir
	ui.downloadSvc.SetDownloadDirectory(dir)

	if ui.tools != nil {
		ui.tools.Configure(ui.settings.GetYTDLPPath(), ui.settings.GetAutoInstall())
	}

	lang := ui.settings.GetLanguage()
	ui.localization.SetLanguage(lang)
	ui.refreshUITexts()
	ui.createMenu()
}

// onOpenFolder reveals the download directory in the file manager
func (ui *RootUI) onOpenFolder() {
	dir := ui.state.OutputDir
	err := platform.CreateDirectoryIfNotExists(dir)
	if err == nil {
		err = platform.OpenFolder(dir)
	}
	if err != nil {
		log.Printf("Error opening folder %s: %v", dir, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFolder)+": "+err.Error()), ui.window.Canvas())
	}
}

// targetEntry returns the focused entry, or the URL entry when focus is elsewhere
func (ui *RootUI) targetEntry() *widget.Entry {
	if entry, ok := ui.window.Canvas().Focused().(*widget.Entry); ok {
		return entry
	}
	return ui.urlEntry
}

func (ui *RootUI) onCut() {
	ui.targetEntry().TypedShortcut(&fyne.ShortcutCut{Clipboard: ui.app.Clipboard()})
}

func (ui *RootUI) onCopy() {
	ui.targetEntry().TypedShortcut(&fyne.ShortcutCopy{Clipboard: ui.app.Clipboard()})
}

func (ui *RootUI) onPaste() {
	ui.targetEntry().TypedShortcut(&fyne.ShortcutPaste{Clipboard: ui.app.Clipboard()})
}

// formatTaskDetails renders percent, size, speed and ETA of a running task
func formatTaskDetails(task *model.DownloadTask) string {
	parts := []string{fmt.Sprintf(ProgressLabelFormat, task.Percent)}
	if task.TotalSize > 0 {
		parts = append(parts, humanize.IBytes(task.TotalSize))
	}
	if task.Speed != "" {
		parts = append(parts, task.Speed)
	}
	if task.ETASec > 0 {
		parts = append(parts, "ETA "+task.GetETAString())
	}
	return strings.Join(parts, MiddleDotSeparator)
}

func qualityOptions() []string {
	var out []string
	for _, q := range model.Qualities() {
		out = append(out, q.String())
	}
	return out
}

func videoFormatOptions() []string {
	var out []string
	for _, f := range model.VideoFormats() {
		out = append(out, f.String())
	}
	return out
}

func audioFormatOptions() []string {
	var out []string
	for _, f := range model.AudioFormats() {
		out = append(out, f.String())
	}
	return out
}
