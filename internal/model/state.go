package model

// AppState holds everything the main window shows. It is owned by the UI
// goroutine; the download worker never touches it directly.
type AppState struct {
	VideoURL         string
	PreferredQuality Quality
	VideoFormat      VideoFormat
	AudioFormat      AudioFormat
	AudioOnly        bool
	OutputDir        string

	Busy     bool
	Progress float64 // 0.0 to 1.0
	Output   string  // status line under the options
}

// NewAppState returns the state shown on first launch.
func NewAppState() *AppState {
	return &AppState{
		PreferredQuality: DefaultQuality,
		VideoFormat:      DefaultVideoFormat,
		AudioFormat:      DefaultAudioFormat,
	}
}

// Request snapshots the current selections.
func (s *AppState) Request() DownloadRequest {
	return DownloadRequest{
		URL:         s.VideoURL,
		Quality:     s.PreferredQuality,
		VideoFormat: s.VideoFormat,
		AudioFormat: s.AudioFormat,
		AudioOnly:   s.AudioOnly,
		OutputDir:   s.OutputDir,
	}
}

// Begin marks the state busy and returns the request to run. It returns
// false without changing anything while a download is already in flight.
func (s *AppState) Begin() (DownloadRequest, bool) {
	if s.Busy {
		return DownloadRequest{}, false
	}
	s.Busy = true
	s.Progress = 0
	return s.Request(), true
}

// Abort undoes Begin when the request never reached the runner.
func (s *AppState) Abort() {
	s.Busy = false
}

// SetProgress clamps p into [0, 1].
func (s *AppState) SetProgress(p float64) {
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	s.Progress = p
}

// Finish clears the busy flag once the subprocess has exited.
func (s *AppState) Finish(outcome Outcome) {
	s.Busy = false
	if outcome == OutcomeSuccess {
		s.Progress = 1
	}
}
