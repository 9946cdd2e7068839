package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It turns widget selections into download requests, renders progress and the
// final outcome, and hosts the settings dialog. All UI strings are localized
// via Localization.
