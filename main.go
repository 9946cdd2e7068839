package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alexflint/go-arg"

	"github.com/ytget/ytdl-gui/internal/config"
	"github.com/ytget/ytdl-gui/internal/download"
	"github.com/ytget/ytdl-gui/internal/model"
	"github.com/ytget/ytdl-gui/internal/platform"
	"github.com/ytget/ytdl-gui/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.ytdl-gui"
	AppName = "YTDL GUI"
)

// Args overrides stored preferences for a single run
type Args struct {
	URL         string `arg:"-u,--url" help:"Video or playlist URL to prefill."`
	YTDLP       string `arg:"--ytdlp" help:"Path to the yt-dlp executable."`
	Output      string `arg:"-o,--output" help:"Where to download to. Path will be made if it doesn't already exist."`
	AudioOnly   bool   `arg:"-x,--audio-only" help:"Start with audio only selected."`
	Quality     string `arg:"-q,--quality" help:"Preferred quality: 144p, 240p, 360p, 480p, 720p, 1080p, 1440p or 2160p."`
	VideoFormat string `arg:"--video-format" help:"Video container: mp4, mkv or mov."`
	AudioFormat string `arg:"--audio-format" help:"Audio format: mp3, wav or ogg."`
}

// Version is printed by --version
func (Args) Version() string {
	return fmt.Sprintf("%s v%s", AppName, version)
}

func main() {
	var args Args
	p := arg.MustParse(&args)

	// Log version information
	fmt.Printf("%s v%s starting...\n", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewAppTheme())

	myWindow := myApp.NewWindow(ui.WindowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	state, err := loadState(settings, args)
	if err != nil {
		p.Fail(err.Error())
	}

	ytdlpPath := args.YTDLP
	if ytdlpPath == "" {
		ytdlpPath = settings.GetYTDLPPath()
	}
	tools := platform.NewToolResolver(ytdlpPath, settings.GetAutoInstall())

	downloadSvc := download.NewService(state.OutputDir, download.WithResolver(tools))

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, myApp, settings, state, ui.Services{
		Downloader: downloadSvc,
		Playlists:  platform.NewPlaylistInspector(),
		Tools:      tools,
	})

	// Show and run
	myWindow.ShowAndRun()
	log.Printf("Window closed, last status: %q", rootUI.State().Output)
}

// loadState reads stored selections, applies overrides and makes sure the
// download directory exists
func loadState(settings *config.Settings, args Args) (*model.AppState, error) {
	state := settings.LoadState()
	if err := applyArgs(args, state); err != nil {
		return nil, err
	}

	if err := platform.CreateDirectoryIfNotExists(state.OutputDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}
	return state, nil
}

// applyArgs copies command-line overrides into the initial state
func applyArgs(args Args, state *model.AppState) error {
	if args.URL != "" {
		state.VideoURL = model.CleanURL(args.URL)
	}
	if args.Output != "" {
		state.OutputDir = args.Output
	}
	if args.AudioOnly {
		state.AudioOnly = true
	}
	if args.Quality != "" {
		q, err := model.ParseQuality(args.Quality)
		if err != nil {
			return err
		}
		state.PreferredQuality = q
	}
	if args.VideoFormat != "" {
		f, err := model.ParseVideoFormat(args.VideoFormat)
		if err != nil {
			return err
		}
		state.VideoFormat = f
	}
	if args.AudioFormat != "" {
		f, err := model.ParseAudioFormat(args.AudioFormat)
		if err != nil {
			return err
		}
		state.AudioFormat = f
	}
	return nil
}
