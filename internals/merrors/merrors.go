package merrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a synchronization run
type Kind uint8

const (
	// ManifestInvalid is a fetch, decode or integrity failure of the remote manifest
	ManifestInvalid Kind = iota + 1
	// RegistryFetchFailed is returned when a registry batch call failed
	RegistryFetchFailed
	// VersionResolutionFailed is returned when no compatible version was found
	VersionResolutionFailed
	// DownloadFailed is returned when a single download failed (fatal for the whole batch)
	DownloadFailed
	// FilesystemError is a create, remove or permission failure
	FilesystemError
	// NotificationDeliveryFailed is returned when the status/progress sink was unreachable
	NotificationDeliveryFailed
	// LauncherConfigInvalid is returned for malformed launcher documents
	LauncherConfigInvalid
)

var kindText = map[Kind]string{
	ManifestInvalid:            "invalid modpack manifest",
	RegistryFetchFailed:        "unable to fetch mod versions",
	VersionResolutionFailed:    "no compatible mod version",
	DownloadFailed:             "download failed",
	FilesystemError:            "filesystem error",
	NotificationDeliveryFailed: "unable to deliver status update",
	LauncherConfigInvalid:      "unable to parse launcher config",
}

func (k Kind) String() string {
	if text, ok := kindText[k]; ok {
		return text
	}
	return "unknown error"
}

// Error makes a Kind usable as a target for errors.Is
func (k Kind) Error() string {
	return k.String()
}

// Error is a classified error. Op names the operation that failed
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E creates a new classified error
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates a new classified error with a formatted message as the cause
func Errorf(kind Kind, op string, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, a...)}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error
func (e *Error) Is(target error) bool {
	kind, ok := target.(Kind)
	return ok && kind == e.Kind
}

// KindOf returns the Kind of the first classified error in err's chain or 0
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return 0
}
