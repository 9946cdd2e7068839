package model

// Package model defines the data shared between the UI and the download
// service: user selections, the app state with its busy guard, download
// tasks and their outcomes. Types are plain values so the UI can snapshot
// them without locking.
