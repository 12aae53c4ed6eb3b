package modpack

// ValidationError is returned when a manifest is missing data or is inconsistent
type ValidationError struct {
	message string
	Path    string
}

func (e ValidationError) Error() string {
	return e.Path + " " + e.message
}

var (
	// ErrNameEmpty is returned when the modpack name is empty
	ErrNameEmpty = ValidationError{message: "is empty", Path: "modpack.name"}
	// ErrVersionEmpty is returned when the modpack version is empty
	ErrVersionEmpty = ValidationError{message: "is empty", Path: "modpack.version"}
	// ErrLoaderEmpty is returned when no mod loader is set
	ErrLoaderEmpty = ValidationError{message: "is empty", Path: "modpack.mod_loader"}
	// ErrGameVersionEmpty is returned when no game version is set
	ErrGameVersionEmpty = ValidationError{message: "is empty", Path: "modpack.game_version"}
	// ErrRegistryMismatch is returned when the identifier and the version of a mod
	// point to different registries
	ErrRegistryMismatch = ValidationError{message: "does not match the registry of identifier", Path: "version"}
	// ErrMissingIdentifier is returned when a mod has no identifier
	ErrMissingIdentifier = ValidationError{message: "is missing", Path: "identifier"}
	// ErrMissingVersion is returned when a mod has no version
	ErrMissingVersion = ValidationError{message: "is missing", Path: "version"}
)
