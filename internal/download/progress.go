package download

import (
	"time"

	"github.com/dustin/go-humanize"
	goytdlp "github.com/lrstanley/go-ytdlp"
)

// Progress is one yt-dlp progress report reduced to what the UI shows.
type Progress struct {
	Percent    float64 // 0 to 100
	TotalBytes uint64  // 0 if unknown
	Speed      string  // e.g. "1.2 MiB/s", empty if unknown
	ETASec     int     // -1 if unknown
	Filename   string  // file being written, empty if unknown
	Title      string  // video title, empty if unknown
}

// Fraction returns progress in the 0..1 range.
func (p Progress) Fraction() float64 {
	f := p.Percent / 100
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// progressFromUpdate converts a go-ytdlp progress update. Speed is the
// average since the file started downloading.
func progressFromUpdate(update goytdlp.ProgressUpdate) Progress {
	p := Progress{
		Percent:  update.Percent(),
		ETASec:   -1,
		Filename: update.Filename,
	}

	if update.TotalBytes > 0 {
		p.TotalBytes = uint64(update.TotalBytes)
	}

	if !update.Status.IsCompletedType() && update.DownloadedBytes > 0 && !update.Started.IsZero() {
		if elapsed := update.Duration(); elapsed > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			p.Speed = humanize.IBytes(uint64(bytesPerSecond)) + "/s"
		}
	}

	if eta := update.ETA(); eta > 0 {
		p.ETASec = int(eta.Round(time.Second).Seconds())
	}

	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}

	return p
}
