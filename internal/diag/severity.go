package diag

// Severity orders diagnostics: errors fail a file, warnings and infos do not.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	// SevError marks lexical, syntax, evaluation and IO failures.
	SevError
)

// String is the upper-case form used by the pretty and JSON renderers.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lower-case form of the one-line short format.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}
