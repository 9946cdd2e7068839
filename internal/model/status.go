package model

// TaskStatus represents the lifecycle of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but the worker has not run yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means yt-dlp is being located and launched
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means the yt-dlp process is running
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusStopping means cancellation was requested
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the process was terminated before exiting on its own
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means yt-dlp exited with status 0
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means yt-dlp exited non-zero or could not be started
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished returns true if the task is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// Outcome is the binary-plus-one result surfaced to the user.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeFailure
	OutcomeTerminated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// OutcomeFromExit maps a process exit. A process without an exit code
// (killed by a signal) counts as terminated.
func OutcomeFromExit(code int, exited bool) Outcome {
	if !exited {
		return OutcomeTerminated
	}
	if code == 0 {
		return OutcomeSuccess
	}
	return OutcomeFailure
}

// TaskStatus returns the terminal task status for the outcome.
func (o Outcome) TaskStatus() TaskStatus {
	switch o {
	case OutcomeSuccess:
		return TaskStatusCompleted
	case OutcomeTerminated:
		return TaskStatusStopped
	default:
		return TaskStatusError
	}
}
