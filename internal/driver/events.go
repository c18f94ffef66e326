package driver

// Status describes where one file is in the run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusFixed
	StatusClean
	StatusSkipped
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusWorking:
		return "working"
	case StatusFixed:
		return "fixed"
	case StatusClean:
		return "clean"
	case StatusSkipped:
		return "skipped"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Event is one progress notification for the UI layer.
type Event struct {
	Path   string
	Status Status
}
