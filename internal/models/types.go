package models

// ScanMode is the kind of scan a run performed.
type ScanMode string

const (
	ModeURI    ScanMode = "uri"
	ModeDomain ScanMode = "domain"
)

// RunStatus represents the lifecycle state of a recorded run
type RunStatus string

const (
	StatusPending  RunStatus = "pending"
	StatusRunning  RunStatus = "running"
	StatusComplete RunStatus = "complete"
	StatusFailed   RunStatus = "failed"
)

// Terminal reports whether no further transitions are expected.
func (s RunStatus) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}
