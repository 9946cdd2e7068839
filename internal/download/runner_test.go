package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdl-gui/internal/model"
)

// fakeYTDLP writes an executable shell script standing in for yt-dlp.
func fakeYTDLP(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func scriptInvocation(executable string) Invocation {
	return NewInvocation(executable, model.DownloadRequest{
		URL:         "https://www.youtube.com/watch?v=abc",
		Quality:     model.Q720,
		VideoFormat: model.VideoMP4,
	}, CommandOptions{ProgressInterval: DefaultProgressInterval})
}

func TestYTDLPRunner_SuccessReportsProgress(t *testing.T) {
	exe := fakeYTDLP(t, `printf '%s\n' '[youtube] abc: Downloading webpage'
printf '%s\n' 'progress:{"info":{"id":"abc","title":"Clip"},"progress":{"status":"downloading","total_bytes":100,"downloaded_bytes":40,"filename":"/tmp/Clip.mp4"}}'`)

	var mu sync.Mutex
	var updates []goytdlp.ProgressUpdate
	var logged []string
	runner := &YTDLPRunner{OnLog: func(pipe, line string) {
		mu.Lock()
		defer mu.Unlock()
		logged = append(logged, line)
	}}

	status, err := runner.Run(context.Background(), scriptInvocation(exe), func(update goytdlp.ProgressUpdate) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, update)
	})

	require.NoError(t, err)
	assert.True(t, status.Exited)
	assert.Equal(t, 0, status.Code)

	require.Len(t, updates, 1)
	assert.Equal(t, 100, updates[0].TotalBytes)
	assert.Equal(t, 40, updates[0].DownloadedBytes)
	assert.Equal(t, "/tmp/Clip.mp4", updates[0].Filename)
	assert.Contains(t, logged, "[youtube] abc: Downloading webpage")
}

func TestYTDLPRunner_NonZeroExitKeepsStderr(t *testing.T) {
	exe := fakeYTDLP(t, `echo "ERROR: Unsupported URL" >&2; exit 2`)

	status, err := NewYTDLPRunner().Run(context.Background(), scriptInvocation(exe), nil)

	require.NoError(t, err)
	assert.True(t, status.Exited)
	assert.Equal(t, 2, status.Code)
	assert.Contains(t, status.Stderr, "Unsupported URL")
}

func TestYTDLPRunner_CancelReportsNoExitCode(t *testing.T) {
	exe := fakeYTDLP(t, `exec sleep 30`)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	status, err := NewYTDLPRunner().Run(ctx, scriptInvocation(exe), nil)

	require.NoError(t, err)
	assert.False(t, status.Exited)
	assert.Equal(t, -1, status.Code)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestYTDLPRunner_MissingExecutable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-yt-dlp")

	_, err := NewYTDLPRunner().Run(context.Background(), scriptInvocation(missing), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestExitStatusFromResult(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name       string
		ctx        context.Context
		res        *goytdlp.Result
		err        error
		want       ExitStatus
		wantRunErr bool
	}{
		{
			name: "clean exit",
			ctx:  context.Background(),
			res:  &goytdlp.Result{ExitCode: 0},
			want: ExitStatus{Code: 0, Exited: true},
		},
		{
			name: "clean exit racing cancel stays a success",
			ctx:  cancelled,
			res:  &goytdlp.Result{ExitCode: 0},
			want: ExitStatus{Code: 0, Exited: true},
		},
		{
			name: "non-zero exit",
			ctx:  context.Background(),
			res:  &goytdlp.Result{ExitCode: 1, Stderr: "ERROR: Video unavailable"},
			err:  errors.New("exit status 1"),
			want: ExitStatus{Code: 1, Exited: true, Stderr: "ERROR: Video unavailable"},
		},
		{
			name: "cancelled",
			ctx:  cancelled,
			res:  &goytdlp.Result{ExitCode: -1},
			err:  errors.New("signal: killed"),
			want: ExitStatus{Code: -1},
		},
		{
			name: "non-zero exit after cancel",
			ctx:  cancelled,
			res:  &goytdlp.Result{ExitCode: 1},
			err:  errors.New("exit status 1"),
			want: ExitStatus{Code: -1},
		},
		{
			name: "killed by an outside signal",
			ctx:  context.Background(),
			res:  &goytdlp.Result{ExitCode: -1},
			err:  errors.New("exit code -1: signal: terminated"),
			want: ExitStatus{Code: -1},
		},
		{
			name:       "failed to start",
			ctx:        context.Background(),
			res:        &goytdlp.Result{ExitCode: -1, Executable: "/opt/yt-dlp"},
			err:        errors.New("fork/exec /opt/yt-dlp: permission denied"),
			want:       ExitStatus{Code: -1, Exited: true},
			wantRunErr: true,
		},
		{
			name:       "no result",
			ctx:        context.Background(),
			err:        errors.New("invalid flags"),
			want:       ExitStatus{Code: -1},
			wantRunErr: true,
		},
		{
			name: "no result after cancel",
			ctx:  cancelled,
			err:  context.Canceled,
			want: ExitStatus{Code: -1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := exitStatusFromResult(test.ctx, test.res, test.err)
			assert.Equal(t, test.want, got)
			if test.wantRunErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
