package download

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ytget/ytdl-gui/internal/model"
)

func TestFormatFilter(t *testing.T) {
	tests := []struct {
		quality  model.Quality
		expected string
	}{
		{model.Q144, "bv[height<=144]+ba"},
		{model.Q240, "bv[height<=240]+ba"},
		{model.Q360, "bv[height<=360]+ba"},
		{model.Q480, "bv[height<=480]+ba"},
		{model.Q720, "bv[height<=720]+ba"},
		{model.Q1080, "bv[height<=1080]+ba"},
		{model.Q1440, "bv[height<=1440]+ba"},
		{model.Q2160, "bv[height<=2160]+ba"},
	}

	for _, test := range tests {
		if got := FormatFilter(test.quality); got != test.expected {
			t.Errorf("FormatFilter(%s) = %s, expected %s", test.quality, got, test.expected)
		}
	}
}

func TestBuildArgs(t *testing.T) {
	const url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

	tests := []struct {
		name string
		req  model.DownloadRequest
		want []string
	}{
		{
			name: "video default",
			req:  model.DownloadRequest{URL: url, Quality: model.Q1080, VideoFormat: model.VideoMKV, AudioFormat: model.AudioMP3},
			want: []string{"-f", "bv[height<=1080]+ba", "--recode-video", "mkv", url},
		},
		{
			name: "video 720 mp4",
			req:  model.DownloadRequest{URL: url, Quality: model.Q720, VideoFormat: model.VideoMP4},
			want: []string{"-f", "bv[height<=720]+ba", "--recode-video", "mp4", url},
		},
		{
			name: "audio only ignores quality and video format",
			req:  model.DownloadRequest{URL: url, Quality: model.Q2160, VideoFormat: model.VideoMOV, AudioFormat: model.AudioOGG, AudioOnly: true},
			want: []string{"-f", "ba", "--audio-format", "ogg", "-x", url},
		},
		{
			name: "url with shell metacharacters stays one argument",
			req:  model.DownloadRequest{URL: "https://example.com/v?a=1&b=$(rm -rf ~)", Quality: model.Q144, VideoFormat: model.VideoMOV},
			want: []string{"-f", "bv[height<=144]+ba", "--recode-video", "mov", "https://example.com/v?a=1&b=$(rm -rf ~)"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, BuildArgs(test.req)); diff != "" {
				t.Errorf("BuildArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// flagValue returns the argument following flag.
func flagValue(args []string, flag string) (string, bool) {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func TestNewInvocation(t *testing.T) {
	req := model.DownloadRequest{
		URL:         "https://youtu.be/x",
		Quality:     model.Q480,
		VideoFormat: model.VideoMP4,
		OutputDir:   "/home/me/Downloads",
	}

	inv := NewInvocation("", req, CommandOptions{ProgressInterval: DefaultProgressInterval})

	if inv.Executable != DefaultExecutable {
		t.Errorf("Expected executable %s, got %s", DefaultExecutable, inv.Executable)
	}

	args := inv.Args()
	want := map[string]string{
		"--format":       "bv[height<=480]+ba",
		"--recode-video": "mp4",
		"--paths":        "/home/me/Downloads",
	}
	for flag, value := range want {
		got, ok := flagValue(args, flag)
		if !ok || got != value {
			t.Errorf("Expected %s %s, got %q (present=%v)", flag, value, got, ok)
		}
	}
	if !slices.Contains(args, "--newline") {
		t.Errorf("Expected --newline when progress is enabled, got %v", args)
	}
	if _, ok := flagValue(args, "--progress-template"); !ok {
		t.Errorf("Expected a progress template, got %v", args)
	}
	if args[len(args)-1] != req.URL {
		t.Errorf("Expected URL last, got %v", args)
	}
}

func TestNewInvocationAudioOnly(t *testing.T) {
	req := model.DownloadRequest{URL: "https://youtu.be/x", Quality: model.Q2160, AudioOnly: true, AudioFormat: model.AudioWAV}

	args := NewInvocation("/opt/yt-dlp", req, CommandOptions{}).Args()

	want := []string{"--format", "ba", "--extract-audio", "--audio-format", "wav", "https://youtu.be/x"}
	sorted := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, args, cmpopts.SortSlices(sorted)); diff != "" {
		t.Errorf("Audio invocation args mismatch (-want +got):\n%s", diff)
	}
	if v, _ := flagValue(args, "--format"); v != BestAudioSelector {
		t.Errorf("Expected --format %s, got %s", BestAudioSelector, v)
	}
	if v, _ := flagValue(args, "--audio-format"); v != "wav" {
		t.Errorf("Expected --audio-format wav, got %s", v)
	}
	if args[len(args)-1] != req.URL {
		t.Errorf("Expected URL last, got %v", args)
	}
}

func TestInvocationString(t *testing.T) {
	inv := NewInvocation("yt-dlp", model.DownloadRequest{
		URL:         "https://youtu.be/x?a=1&b=2",
		Quality:     model.Q720,
		VideoFormat: model.VideoMP4,
	}, CommandOptions{})

	got := inv.String()
	if !strings.HasPrefix(got, "yt-dlp ") {
		t.Errorf("String() = %s, expected the executable first", got)
	}
	for _, part := range []string{`"bv[height<=720]+ba"`, "--recode-video mp4", `"https://youtu.be/x?a=1&b=2"`} {
		if !strings.Contains(got, part) {
			t.Errorf("String() = %s, expected it to contain %s", got, part)
		}
	}
	if !strings.HasSuffix(got, `"https://youtu.be/x?a=1&b=2"`) {
		t.Errorf("String() = %s, expected the URL last", got)
	}
}
