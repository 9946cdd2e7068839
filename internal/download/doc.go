// Package download turns the user's selections into a go-ytdlp command,
// runs yt-dlp off the UI goroutine and reports progress and the exit back
// through an update callback. Only one download runs at a time.
package download
