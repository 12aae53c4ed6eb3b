package modpack

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Registry is one of the supported mod registries
type Registry uint8

const (
	// Modrinth addresses versions by file hash
	Modrinth Registry = iota + 1
	// CurseForge addresses projects and files by numeric ids
	CurseForge
)

func (r Registry) String() string {
	switch r {
	case Modrinth:
		return "modrinth"
	case CurseForge:
		return "curseforge"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Registry) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RegistryRef identifies a project on a registry.
// It is either a `ModrinthProject` or a `CurseForgeProject`
type RegistryRef interface {
	Registry() Registry
	String() string
	isRegistryRef()
}

// VersionRef identifies a single version of a project.
// It is either a `ModrinthVersionHash` or a `CurseForgeVersionID`
type VersionRef interface {
	Registry() Registry
	String() string
	isVersionRef()
}

// ModrinthProject is a Modrinth project id or slug
type ModrinthProject string

// CurseForgeProject is a numeric CurseForge project (mod) id
type CurseForgeProject int

// ModrinthVersionHash is the sha1 or sha512 hash of a version's primary file
type ModrinthVersionHash string

// CurseForgeVersionID is a numeric CurseForge file id
type CurseForgeVersionID int

func (ModrinthProject) Registry() Registry { return Modrinth }
func (CurseForgeProject) Registry() Registry { return CurseForge }
func (ModrinthVersionHash) Registry() Registry { return Modrinth }
func (CurseForgeVersionID) Registry() Registry { return CurseForge }

func (p ModrinthProject) String() string { return "modrinth:" + string(p) }
func (p CurseForgeProject) String() string { return "curseforge:" + strconv.Itoa(int(p)) }
func (v ModrinthVersionHash) String() string { return "modrinth@" + string(v) }
func (v CurseForgeVersionID) String() string { return "curseforge@" + strconv.Itoa(int(v)) }

func (ModrinthProject) isRegistryRef() {}
func (CurseForgeProject) isRegistryRef() {}
func (ModrinthVersionHash) isVersionRef() {}
func (CurseForgeVersionID) isVersionRef() {}

// wire tags of the externally tagged json representation
const (
	tagModrinthProject     = "ModrinthProject"
	tagCurseForgeProject   = "CurseForgeProject"
	tagModrinthVersionHash = "ModrinthVersionHash"
	tagCurseForgeVersionID = "CurseForgeVersionId"
)

// ErrInvalidTag is returned when a tagged value has an unknown or no tag
var ErrInvalidTag = errors.New("invalid tagged value")

// ModEntry is a single mod of the modpack
type ModEntry struct {
	Name       string
	Identifier RegistryRef
	Version    VersionRef
}

// Validate returns an error if the identifier or version is missing or if they
// point to different registries
func (e *ModEntry) Validate() error {
	switch {
	case e.Identifier == nil:
		return ErrMissingIdentifier
	case e.Version == nil:
		return ErrMissingVersion
	case e.Identifier.Registry() != e.Version.Registry():
		return fmt.Errorf("%s: %w (%s vs %s)", e.Name, ErrRegistryMismatch, e.Identifier, e.Version)
	}
	return nil
}

type wireModEntry struct {
	Name       string                     `json:"name"`
	Identifier map[string]json.RawMessage `json:"identifier"`
	Version    map[string]json.RawMessage `json:"version"`
}

// UnmarshalJSON decodes the externally tagged representation
// (`{"identifier": {"ModrinthProject": "AANobbMI"}}`)
func (e *ModEntry) UnmarshalJSON(data []byte) error {
	wire := wireModEntry{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	e.Name = wire.Name
	e.Identifier = nil
	e.Version = nil

	if wire.Identifier != nil {
		tag, raw, err := singleTag(wire.Identifier)
		if err != nil {
			return fmt.Errorf("%s identifier: %w", wire.Name, err)
		}
		switch tag {
		case tagModrinthProject:
			var id string
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("%s identifier: %w", wire.Name, err)
			}
			e.Identifier = ModrinthProject(id)
		case tagCurseForgeProject:
			var id int
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("%s identifier: %w", wire.Name, err)
			}
			e.Identifier = CurseForgeProject(id)
		default:
			return fmt.Errorf("%s identifier: %w: %q", wire.Name, ErrInvalidTag, tag)
		}
	}

	if wire.Version != nil {
		tag, raw, err := singleTag(wire.Version)
		if err != nil {
			return fmt.Errorf("%s version: %w", wire.Name, err)
		}
		switch tag {
		case tagModrinthVersionHash:
			var hash string
			if err := json.Unmarshal(raw, &hash); err != nil {
				return fmt.Errorf("%s version: %w", wire.Name, err)
			}
			e.Version = ModrinthVersionHash(hash)
		case tagCurseForgeVersionID:
			var id int
			if err := json.Unmarshal(raw, &id); err != nil {
				return fmt.Errorf("%s version: %w", wire.Name, err)
			}
			e.Version = CurseForgeVersionID(id)
		default:
			return fmt.Errorf("%s version: %w: %q", wire.Name, ErrInvalidTag, tag)
		}
	}

	return nil
}

// MarshalJSON encodes the entry in the same externally tagged form it is read from
func (e ModEntry) MarshalJSON() ([]byte, error) {
	out := struct {
		Name       string         `json:"name"`
		Identifier map[string]any `json:"identifier,omitempty"`
		Version    map[string]any `json:"version,omitempty"`
	}{Name: e.Name}

	switch id := e.Identifier.(type) {
	case ModrinthProject:
		out.Identifier = map[string]any{tagModrinthProject: string(id)}
	case CurseForgeProject:
		out.Identifier = map[string]any{tagCurseForgeProject: int(id)}
	case nil:
	default:
		return nil, fmt.Errorf("%s identifier: %w: %T", e.Name, ErrInvalidTag, id)
	}

	switch v := e.Version.(type) {
	case ModrinthVersionHash:
		out.Version = map[string]any{tagModrinthVersionHash: string(v)}
	case CurseForgeVersionID:
		out.Version = map[string]any{tagCurseForgeVersionID: int(v)}
	case nil:
	default:
		return nil, fmt.Errorf("%s version: %w: %T", e.Name, ErrInvalidTag, v)
	}

	return json.Marshal(out)
}

func singleTag(m map[string]json.RawMessage) (string, json.RawMessage, error) {
	if len(m) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one tag, got %d", ErrInvalidTag, len(m))
	}
	for tag, raw := range m {
		return tag, raw, nil
	}
	// unreachable
	return "", nil, ErrInvalidTag
}
