package model

import "encoding/json"

// namespaceDTO is Namespace's wire shape: its unexported slot vector and
// indexes are derivable from Types/Stubbed, so only those are carried —
// this keeps the serialized form stable even if the index representation
// changes internally.
type namespaceDTO struct {
	ID              NamespaceID `json:"id"`
	Name            string      `json:"name"`
	Packages        []string    `json:"packages,omitempty"`
	SharedLibraries []string    `json:"shared_libraries,omitempty"`
	Includes        []string    `json:"includes,omitempty"`
	Versions        []string    `json:"versions,omitempty"`
	Types           []Type      `json:"types"`
	Stubbed         []LocalID   `json:"stubbed,omitempty"`
}

// MarshalJSON implements the serialization half of SPEC_FULL.md §4.11's
// cache: a parsed Library is cached verbatim, keyed by a content hash of
// its GIR file set, so a later identical run can skip re-parsing.
func (ns *Namespace) MarshalJSON() ([]byte, error) {
	dto := namespaceDTO{
		ID: ns.ID, Name: ns.Name, Packages: ns.Packages,
		SharedLibraries: ns.SharedLibraries, Includes: ns.Includes, Versions: ns.Versions,
		Types: ns.types,
	}
	for id := range ns.stubbed {
		dto.Stubbed = append(dto.Stubbed, id)
	}
	return json.Marshal(dto)
}

// UnmarshalJSON reconstructs a Namespace's name/c-name indexes and stubbed
// set from the serialized Types/Stubbed slices.
func (ns *Namespace) UnmarshalJSON(data []byte) error {
	var dto namespaceDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	ns.ID = dto.ID
	ns.Name = dto.Name
	ns.Packages = dto.Packages
	ns.SharedLibraries = dto.SharedLibraries
	ns.Includes = dto.Includes
	ns.Versions = dto.Versions
	ns.types = dto.Types
	ns.nameIndex = make(map[string]LocalID, len(dto.Types))
	ns.cNameIndex = make(map[string]LocalID, len(dto.Types))
	ns.stubbed = make(map[LocalID]bool, len(dto.Stubbed))
	for i, t := range dto.Types {
		id := LocalID(i)
		if t.Name != "" {
			ns.nameIndex[t.Name] = id
		}
		if t.CType != "" {
			ns.cNameIndex[t.CType] = id
		}
	}
	for _, id := range dto.Stubbed {
		ns.stubbed[id] = true
	}
	return nil
}

// libraryDTO is Library's wire shape.
type libraryDTO struct {
	Namespaces []*Namespace `json:"namespaces"`
}

// MarshalJSON serializes every namespace in load order.
func (l *Library) MarshalJSON() ([]byte, error) {
	return json.Marshal(libraryDTO{Namespaces: l.namespaces})
}

// UnmarshalJSON reconstructs the namespace-by-name index from the
// deserialized namespace list.
func (l *Library) UnmarshalJSON(data []byte) error {
	var dto libraryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	l.namespaces = dto.Namespaces
	l.namespaceIdx = make(map[string]NamespaceID, len(dto.Namespaces))
	for _, ns := range dto.Namespaces {
		if ns.ID == InternalNamespaceID {
			l.namespaceIdx["*"] = ns.ID
			continue
		}
		l.namespaceIdx[ns.Name] = ns.ID
	}
	return nil
}
