package flexver

// Status describes the outcome of a Parse call. The numeric values are
// part of the public contract (they surface in JSON output and scripts).
type Status int

const (
	// StatusMalformed means the input does not begin with any numeric
	// prefix at all and no version could be produced.
	StatusMalformed Status = -1

	// StatusOK is a clean parse with no leftover text.
	StatusOK Status = 0

	// StatusMajorFailed through StatusRevisionFailed mean the named
	// component could not be used verbatim; a partial version built
	// from its numeric prefix (if any) was still produced.
	StatusMajorFailed    Status = 1
	StatusMinorFailed    Status = 2
	StatusBuildFailed    Status = 3
	StatusRevisionFailed Status = 4

	// StatusOKExcess is a clean four-component parse with extra
	// dot-separated segments beyond the fourth.
	StatusOKExcess Status = 5
)

// failedStatus maps a 0-based failed component index to its status.
func failedStatus(index int) Status {
	return Status(index + 1)
}

// Success reports whether a complete version was parsed, possibly with
// excess segments.
func (s Status) Success() bool {
	return s == StatusOK || s == StatusOKExcess
}

// String returns a short machine-friendly label for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOKExcess:
		return "ok-excess"
	case StatusMajorFailed:
		return "major-failed"
	case StatusMinorFailed:
		return "minor-failed"
	case StatusBuildFailed:
		return "build-failed"
	case StatusRevisionFailed:
		return "revision-failed"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}
