package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytdl-gui/internal/model"
)

// Service errors
var (
	ErrBusy       = errors.New("a download is already in progress")
	ErrNotRunning = errors.New("no download is running")
)

// Service constants
const (
	TaskIDPrefix           = "task-"
	ProgressNotifyInterval = 250 * time.Millisecond
	LogLinePrefix          = "yt-dlp: "
)

// Service runs one yt-dlp download at a time
type Service struct {
	mu          sync.Mutex
	current     *model.DownloadTask
	cancel      context.CancelFunc
	busy        bool
	lastNotify  time.Time
	downloadDir string
	runner      Runner
	resolver    Resolver
	opts        CommandOptions
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// Option configures a Service
type Option func(*Service)

// WithRunner replaces the go-ytdlp runner
func WithRunner(r Runner) Option {
	return func(s *Service) { s.runner = r }
}

// WithResolver sets how the yt-dlp executable is located
func WithResolver(r Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithCommandOptions sets extra yt-dlp switches
func WithCommandOptions(opts CommandOptions) Option {
	return func(s *Service) { s.opts = opts }
}

// NewService creates a new download service
func NewService(downloadDir string, options ...Option) *Service {
	s := &Service{
		downloadDir: downloadDir,
		runner:      &YTDLPRunner{OnLog: logOutput},
		resolver:    staticResolver(DefaultExecutable),
		opts:        CommandOptions{ProgressInterval: DefaultProgressInterval},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SetUpdateCallback sets the callback function for task updates. The
// callback runs on the worker goroutine and receives a copy of the task.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// Busy reports whether a download is running
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Current returns a copy of the running or most recent task
func (s *Service) Current() (*model.DownloadTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}
	snap := s.current.Snapshot()
	return &snap, true
}

// Submit validates the request and starts one worker for it
func (s *Service) Submit(req model.DownloadRequest) (*model.DownloadTask, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	if req.OutputDir == "" {
		req.OutputDir = s.downloadDir
	}

	task := &model.DownloadTask{
		ID:        generateTaskID(),
		Request:   req,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		ExitCode:  -1,
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.current = task
	s.cancel = cancel
	s.busy = true
	snap := task.Snapshot()
	s.mu.Unlock()

	log.Printf("Download accepted: id=%s url=%s quality=%s audio_only=%v", task.ID, req.URL, req.Quality, req.AudioOnly)

	go s.run(ctx, task)

	return &snap, nil
}

// Cancel stops the running download
func (s *Service) Cancel() error {
	s.mu.Lock()
	if !s.busy || s.current == nil {
		s.mu.Unlock()
		return ErrNotRunning
	}

	task := s.current
	task.Status = model.TaskStatusStopping
	cancel := s.cancel
	s.mu.Unlock()

	log.Printf("Cancelling download: id=%s", task.ID)
	s.notifyUpdate(task, true)
	cancel()
	return nil
}

// run executes the task on the worker goroutine
func (s *Service) run(ctx context.Context, task *model.DownloadTask) {
	s.setStatus(task, model.TaskStatusStarting)

	executable, err := s.resolver.Resolve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.finish(task, ExitStatus{Code: -1}, nil)
			return
		}
		s.finish(task, ExitStatus{Code: -1, Exited: true}, fmt.Errorf("yt-dlp not available: %w", err))
		return
	}

	inv := NewInvocation(executable, task.Request, s.opts)
	log.Printf("Running: %s", inv)

	s.setStatus(task, model.TaskStatusDownloading)

	status, err := s.runner.Run(ctx, inv, func(update goytdlp.ProgressUpdate) {
		s.handleProgress(task, progressFromUpdate(update))
	})
	if err != nil && ctx.Err() != nil {
		// cancelled before the process could start
		status, err = ExitStatus{Code: -1}, nil
	}
	s.finish(task, status, err)
}

// handleProgress applies a progress report to the task
func (s *Service) handleProgress(task *model.DownloadTask, p Progress) {
	s.mu.Lock()
	if task.Status == model.TaskStatusStopping {
		s.mu.Unlock()
		return
	}
	if p.Filename != "" {
		task.OutputPath = p.Filename
	}
	if !model.IsPlaylistURL(task.Request.URL) {
		switch {
		case p.Title != "":
			task.Title = p.Title
		case p.Filename != "" && task.Title == "":
			task.Title = titleFromPath(p.Filename)
		}
	}
	task.Progress = p.Fraction()
	task.Percent = int(p.Percent)
	if p.TotalBytes > 0 {
		task.TotalSize = p.TotalBytes
	}
	if p.Speed != "" {
		task.Speed = p.Speed
	}
	task.ETASec = p.ETASec
	s.mu.Unlock()

	s.notifyUpdate(task, false)
}

// finish records the exit, clears the busy flag and sends the final update
func (s *Service) finish(task *model.DownloadTask, status ExitStatus, runErr error) {
	s.mu.Lock()
	task.ExitCode = status.Code
	task.FinishedAt = time.Now()

	switch {
	case runErr != nil:
		task.Outcome = model.OutcomeFailure
		task.LastError = runErr.Error()
	default:
		task.Outcome = model.OutcomeFromExit(status.Code, status.Exited)
		if task.Outcome == model.OutcomeFailure {
			task.LastError = lastLine(status.Stderr)
			if task.LastError == "" {
				task.LastError = fmt.Sprintf("yt-dlp exited with status %d", status.Code)
			}
		}
	}

	task.Status = task.Outcome.TaskStatus()
	if task.Outcome == model.OutcomeSuccess {
		task.Progress = 1.0
		task.Percent = 100
	}

	if s.cancel != nil && s.current == task {
		s.cancel()
		s.cancel = nil
	}
	s.busy = false
	s.mu.Unlock()

	if runErr != nil {
		log.Printf("Download failed to run: id=%s err=%v", task.ID, runErr)
	} else {
		log.Printf("Download finished: id=%s outcome=%s exit=%d", task.ID, task.Outcome, status.Code)
	}

	s.notifyUpdate(task, true)
}

// setStatus updates the status and notifies
func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.mu.Lock()
	if task.Status == model.TaskStatusStopping {
		s.mu.Unlock()
		return
	}
	task.Status = status
	s.mu.Unlock()
	s.notifyUpdate(task, true)
}

// notifyUpdate calls the update callback with a copy of the task. Progress
// updates are throttled; status changes always go through.
func (s *Service) notifyUpdate(task *model.DownloadTask, force bool) {
	s.mu.Lock()
	callback := s.onUpdate
	now := time.Now()
	if !force && now.Sub(s.lastNotify) < ProgressNotifyInterval {
		s.mu.Unlock()
		return
	}
	s.lastNotify = now
	snap := task.Snapshot()
	s.mu.Unlock()

	if callback != nil {
		callback(&snap)
	}
}

// logOutput writes yt-dlp output to the log
func logOutput(pipe, line string) {
	if line != "" {
		log.Print(LogLinePrefix + pipe + ": " + line)
	}
}

// staticResolver always returns the same executable name
type staticResolver string

func (r staticResolver) Resolve(context.Context) (string, error) {
	return string(r), nil
}

// generateTaskID generates a unique, time-ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
