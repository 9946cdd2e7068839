package download

import (
	"context"

	goytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytdl-gui/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// Submit starts a download in the background and returns immediately.
	// It fails with ErrBusy while another download is running.
	Submit(req model.DownloadRequest) (*model.DownloadTask, error)

	// Cancel terminates the running download; its outcome becomes terminated.
	Cancel() error

	Busy() bool
	Current() (*model.DownloadTask, bool)

	// SetDownloadDirectory sets the directory passed to yt-dlp with --paths
	SetDownloadDirectory(dir string)
}

// Runner executes an invocation and blocks until the process exits.
type Runner interface {
	Run(ctx context.Context, inv Invocation, onProgress func(goytdlp.ProgressUpdate)) (ExitStatus, error)
}

// Resolver locates the yt-dlp executable.
type Resolver interface {
	Resolve(ctx context.Context) (string, error)
}
