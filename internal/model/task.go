package model

import (
	"fmt"
	"strings"
	"time"
)

// DownloadTask represents a single yt-dlp run
type DownloadTask struct {
	ID         string
	Request    DownloadRequest
	Status     TaskStatus
	Progress   float64   // 0.0 to 1.0
	Percent    int       // 0 to 100
	Speed      string    // human readable speed (e.g., "1.2 MiB/s")
	ETASec     int       // ETA in seconds, -1 if unknown
	TotalSize  uint64    // bytes reported by yt-dlp, 0 if unknown
	ExitCode   int       // process exit code, -1 if none
	Outcome    Outcome   // set once the process has exited
	LastError  string    // last error message if any
	OutputPath string    // last destination announced by yt-dlp
	StartedAt  time.Time // when the task was accepted
	FinishedAt time.Time // when the process exited
	Title      string    // playlist or video title if known
}

// URL is a shorthand for the requested URL.
func (dt *DownloadTask) URL() string {
	return dt.Request.URL
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetDisplayTitle returns the title when known and not itself a URL, else the URL
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}
	return dt.Request.URL
}

// Snapshot returns a copy safe to hand to another goroutine.
func (dt *DownloadTask) Snapshot() DownloadTask {
	return *dt
}
