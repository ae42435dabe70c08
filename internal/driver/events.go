package driver

import "time"

// FileStatus reports where a file is in the pipeline.
type FileStatus int

const (
	FileQueued FileStatus = iota
	FileStarted
	FileDone
)

// FileEvent describes progress on one file of a directory run.
type FileEvent struct {
	Path   string
	Status FileStatus
	// Index is the position of the file in the sorted file list, Total the
	// length of that list.
	Index, Total int
	// Set on FileDone.
	Diagnostics int
	Cached      bool
	Elapsed     time.Duration
	Err         error
}

// Observer receives file events. It is called from worker goroutines and
// must be safe for concurrent use.
type Observer func(FileEvent)

func (o Observer) emit(ev FileEvent) {
	if o != nil {
		o(ev)
	}
}
