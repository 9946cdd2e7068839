package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window
const (
	WindowTitle          = "YTDL GUI"
	WindowWidth  float32 = 500
	WindowHeight float32 = 430
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	HeadingTextSize float32 = 24
	SettingsWidth   float32 = 480
	SettingsHeight  float32 = 360
)

// Timeouts
const (
	ToolCheckTimeout = 2 * time.Minute
)
