// Package classify maps scan outcomes onto the display categories used by
// the console reporter.
package classify

import "github.com/hakim/reconscan/internal/engine"

// Category is how a result line is presented.
type Category int

const (
	Neutral Category = iota
	Success
	Warning
	Failure
	ClientOrServerError
)

func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	case ClientOrServerError:
		return "client-or-server-error"
	default:
		return "neutral"
	}
}

// FromHTTPStatus classifies an HTTP status line such as "404 Not Found" by
// its first character. Anything other than 2xx, 4xx and 5xx is Neutral,
// including a status with leading whitespace.
func FromHTTPStatus(status string) Category {
	if status == "" {
		return Neutral
	}
	switch status[0] {
	case '2':
		return Success
	case '4', '5':
		return ClientOrServerError
	default:
		return Neutral
	}
}

// FromScanStatus classifies the terminal status of a whole run.
func FromScanStatus(st engine.Status) Category {
	switch st {
	case engine.StatusDone:
		return Success
	case engine.StatusTimeout:
		return Warning
	default:
		return Failure
	}
}
