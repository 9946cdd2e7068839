package platform

// Package platform contains OS integration and external tooling glue:
// locating or installing yt-dlp, filesystem helpers, revealing folders and
// previewing playlists before handing them to yt-dlp.
