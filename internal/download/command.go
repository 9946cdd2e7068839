package download

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytdl-gui/internal/model"
)

// DefaultExecutable is looked up on PATH when no explicit path is configured.
const DefaultExecutable = "yt-dlp"

// yt-dlp flags
const (
	FlagFormat      = "-f"
	FlagAudioFormat = "--audio-format"
	FlagExtract     = "-x"
	FlagRecodeVideo = "--recode-video"

	BestAudioSelector = "ba"
)

// DefaultProgressInterval is how often yt-dlp reports progress.
const DefaultProgressInterval = 500 * time.Millisecond

// FormatFilter returns the yt-dlp format selector for the best video no
// taller than q merged with the best audio.
func FormatFilter(q model.Quality) string {
	return fmt.Sprintf("bv[height<=%d]+ba", q.Height())
}

// BuildArgs maps a request to yt-dlp arguments. The URL is always last.
func BuildArgs(req model.DownloadRequest) []string {
	if req.AudioOnly {
		return []string{FlagFormat, BestAudioSelector, FlagAudioFormat, req.AudioFormat.String(), FlagExtract, req.URL}
	}
	return []string{FlagFormat, FormatFilter(req.Quality), FlagRecodeVideo, req.VideoFormat.String(), req.URL}
}

// CommandOptions are switches that do not come from the main form.
type CommandOptions struct {
	// ProgressInterval enables progress reports at this rate; zero disables them.
	ProgressInterval time.Duration
}

// Invocation is one yt-dlp run for a request.
type Invocation struct {
	Executable string
	Request    model.DownloadRequest
	Options    CommandOptions
}

// NewInvocation fills in the default executable.
func NewInvocation(executable string, req model.DownloadRequest, opts CommandOptions) Invocation {
	if executable == "" {
		executable = DefaultExecutable
	}
	return Invocation{Executable: executable, Request: req, Options: opts}
}

// Command builds the go-ytdlp command carrying the same selections as
// BuildArgs. The URL is passed to Run separately. onProgress is registered
// only when progress reports are enabled.
func (inv Invocation) Command(onProgress goytdlp.ProgressCallbackFunc) *goytdlp.Command {
	req := inv.Request

	cmd := goytdlp.New().
		SetExecutable(inv.Executable).
		SetSeparateProcessGroup(true)

	if req.OutputDir != "" {
		cmd.Paths(req.OutputDir)
	}

	if req.AudioOnly {
		cmd.Format(BestAudioSelector).
			ExtractAudio().
			AudioFormat(req.AudioFormat.String())
	} else {
		cmd.Format(FormatFilter(req.Quality)).
			RecodeVideo(req.VideoFormat.String())
	}

	if onProgress != nil && inv.Options.ProgressInterval > 0 {
		cmd.ProgressFunc(inv.Options.ProgressInterval, onProgress)
	}
	return cmd
}

// Args renders the flags Command passes to yt-dlp followed by the URL.
func (inv Invocation) Args() []string {
	cmd := inv.Command(func(goytdlp.ProgressUpdate) {})

	var args []string
	for _, flag := range cmd.GetFlagConfig().ToFlags() {
		args = append(args, flag.Raw()...)
	}
	return append(args, inv.Request.URL)
}

// String renders the invocation so it can be pasted into a shell.
func (inv Invocation) String() string {
	args := inv.Args()
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(inv.Executable))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if strings.ContainsAny(arg, " \t\n\"'[]<>=+*?&|;$%()") {
		return strconv.Quote(arg)
	}
	return arg
}
