package model

import (
	"fmt"
	"strings"
)

// Quality is the preferred maximum video height.
type Quality int

const (
	Q144  Quality = 144
	Q240  Quality = 240
	Q360  Quality = 360
	Q480  Quality = 480
	Q720  Quality = 720
	Q1080 Quality = 1080
	Q1440 Quality = 1440
	Q2160 Quality = 2160
)

// DefaultQuality is selected on first launch.
const DefaultQuality = Q1080

// Qualities returns every supported quality, lowest first.
func Qualities() []Quality {
	return []Quality{Q144, Q240, Q360, Q480, Q720, Q1080, Q1440, Q2160}
}

// Height returns the maximum video height in pixels.
func (q Quality) Height() int {
	return int(q)
}

// String returns the label shown in the UI, e.g. "1080p".
func (q Quality) String() string {
	return fmt.Sprintf("%dp", int(q))
}

// Valid reports whether q is one of the supported qualities.
func (q Quality) Valid() bool {
	for _, known := range Qualities() {
		if q == known {
			return true
		}
	}
	return false
}

// ParseQuality accepts "1080p" or "1080".
func ParseQuality(s string) (Quality, error) {
	trimmed := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "p")
	for _, q := range Qualities() {
		if fmt.Sprint(int(q)) == trimmed {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unsupported quality: %q", s)
}

// VideoFormat is the container the video is recoded into.
type VideoFormat string

const (
	VideoMP4 VideoFormat = "mp4"
	VideoMKV VideoFormat = "mkv"
	VideoMOV VideoFormat = "mov"
)

// DefaultVideoFormat is selected on first launch.
const DefaultVideoFormat = VideoMKV

// VideoFormats returns the supported video containers in display order.
func VideoFormats() []VideoFormat {
	return []VideoFormat{VideoMP4, VideoMKV, VideoMOV}
}

func (f VideoFormat) String() string {
	return string(f)
}

// ParseVideoFormat matches case-insensitively.
func ParseVideoFormat(s string) (VideoFormat, error) {
	for _, f := range VideoFormats() {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported video format: %q", s)
}

// AudioFormat is the codec used when extracting audio only.
type AudioFormat string

const (
	AudioMP3 AudioFormat = "mp3"
	AudioWAV AudioFormat = "wav"
	AudioOGG AudioFormat = "ogg"
)

// DefaultAudioFormat is selected on first launch.
const DefaultAudioFormat = AudioMP3

// AudioFormats returns the supported audio formats in display order.
func AudioFormats() []AudioFormat {
	return []AudioFormat{AudioMP3, AudioWAV, AudioOGG}
}

func (f AudioFormat) String() string {
	return string(f)
}

// ParseAudioFormat matches case-insensitively.
func ParseAudioFormat(s string) (AudioFormat, error) {
	for _, f := range AudioFormats() {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported audio format: %q", s)
}
