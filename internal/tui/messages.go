package tui

import (
	"time"

	"github.com/zaidlab/folio/internal/config"
)

// ViewMode determines which layer receives input.
type ViewMode int

const (
	ViewPage ViewMode = iota
	ViewSearch
	ViewCard
	ViewUpload
	ViewHelp
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// settleMsg fires once the terminal has stopped resizing. Only the latest seq counts.
type settleMsg struct {
	seq int
}

// clearStatusMsg hides the status line unless a newer status replaced it.
type clearStatusMsg struct {
	seq int
}

// ContentReloadedMsg carries content re-read from disk. Err is set when the new file is
// invalid, in which case the current content stays on screen.
type ContentReloadedMsg struct {
	Content *config.Content
	Err     error
}

// linkCopiedMsg reports the outcome of copying an activated link.
type linkCopiedMsg struct {
	label string
	url   string
	err   error
}
