// Package exitcode provides standardized exit codes for assetsync
package exitcode

// Exit codes for the assetsync CLI. The batch contract surfaces only
// Success and GeneralError; the finer-grained codes are used in log
// context when classifying a failure.
const (
	Success         = 0
	GeneralError    = 1
	InputError      = 2
	ValidationError = 3
	FileSystemError = 4
	NetworkError    = 5
	PublishError    = 6
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case InputError:
		return "Input error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case NetworkError:
		return "Network error"
	case PublishError:
		return "Publish error"
	default:
		return "Unknown error"
	}
}
