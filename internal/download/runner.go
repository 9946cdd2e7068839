package download

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goytdlp "github.com/lrstanley/go-ytdlp"
)

// ExitStatus is how the subprocess ended. Exited is false when the process
// was killed by a signal or cancelled, in which case Code is -1.
type ExitStatus struct {
	Code   int
	Exited bool
	Stderr string
}

// YTDLPRunner runs invocations through go-ytdlp.
type YTDLPRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string

	// OnLog receives every output line once the process has exited.
	OnLog func(pipe, line string)
}

// NewYTDLPRunner creates a runner that executes in the current directory
func NewYTDLPRunner() *YTDLPRunner {
	return &YTDLPRunner{}
}

// Run starts yt-dlp, forwards its progress reports to onProgress and blocks
// until the process exits. An error is returned only when the process could
// not be started; a non-zero exit is reported through ExitStatus.
func (r *YTDLPRunner) Run(ctx context.Context, inv Invocation, onProgress func(goytdlp.ProgressUpdate)) (ExitStatus, error) {
	var fn goytdlp.ProgressCallbackFunc
	if onProgress != nil {
		fn = goytdlp.ProgressCallbackFunc(onProgress)
	}

	cmd := inv.Command(fn)
	if r.Dir != "" {
		cmd.SetWorkDir(r.Dir)
	}

	res, err := cmd.Run(ctx, inv.Request.URL)
	if res != nil && r.OnLog != nil {
		for _, l := range res.OutputLogs {
			r.OnLog(l.Pipe, l.Line)
		}
	}
	return exitStatusFromResult(ctx, res, err)
}

// exitStatusFromResult maps a go-ytdlp result. A clean exit stays a success
// even when cancellation raced it; otherwise a cancelled context or a
// signal-killed process reports Exited=false.
func exitStatusFromResult(ctx context.Context, res *goytdlp.Result, err error) (ExitStatus, error) {
	if res == nil {
		if ctx.Err() != nil {
			return ExitStatus{Code: -1}, nil
		}
		if err == nil {
			err = errors.New("yt-dlp returned no result")
		}
		return ExitStatus{Code: -1}, fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	status := ExitStatus{Code: res.ExitCode, Exited: true, Stderr: res.Stderr}
	if res.ExitCode == 0 {
		return status, nil
	}

	if ctx.Err() != nil {
		status.Code = -1
		status.Exited = false
		return status, nil
	}

	if _, ok := goytdlp.IsMisconfigError(err); ok {
		return status, fmt.Errorf("failed to start %s: %w", res.Executable, err)
	}

	if res.ExitCode == -1 {
		if killedBySignal(err) {
			status.Exited = false
			return status, nil
		}
		return status, fmt.Errorf("failed to start %s: %w", res.Executable, err)
	}
	return status, nil
}

// killedBySignal reports whether err carries os/exec's "signal: ..." text.
// go-ytdlp flattens the underlying *exec.ExitError into a message.
func killedBySignal(err error) bool {
	return err != nil && strings.Contains(err.Error(), "signal: ")
}
