// Package config resolves the TOML configuration surface of spec.md §6
// ([options], [[object]]) into per-TypeId generation decisions: status
// (manual/generate/ignore), concurrency tag, derive/rename lists, and cfg
// conditions.
//
// The loader itself is out of scope per spec.md §1 ("the TOML configuration
// loader's authoring UX" is an external collaborator); what lives here is the
// resolver that projects an already-parsed Config onto TypeIds, using
// github.com/BurntSushi/toml only to decode the file into the Config struct
// below — present in the teacher's own go.mod, unlike a hand-rolled decoder.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// WorkMode mirrors the options.work_mode TOML key.
type WorkMode string

const (
	ModeNormal WorkMode = "normal"
	ModeSys    WorkMode = "sys"
	ModeDoc    WorkMode = "doc"
)

// Concurrency mirrors the options.concurrency TOML key, the generated-code
// threading tag of spec.md §5.
type Concurrency string

const (
	ConcurrencyNone       Concurrency = "none"
	ConcurrencySend       Concurrency = "send"
	ConcurrencySendSync   Concurrency = "send+sync"
	ConcurrencySendUnique Concurrency = "send+unique"
)

// Options is the root [options] table.
type Options struct {
	WorkMode              WorkMode    `toml:"work_mode"`
	GirsDir               string      `toml:"girs_dir"`
	Library               string      `toml:"library"`
	Version               string      `toml:"version"`
	TargetPath            string      `toml:"target_path"`
	AutoPath              string      `toml:"auto_path"`
	DocTargetPath         string      `toml:"doc_target_path"`
	MinCfgVersion         string      `toml:"min_cfg_version"`
	GenerateSafetyAsserts bool        `toml:"generate_safety_asserts"`
	DeprecateByMinVersion bool        `toml:"deprecate_by_min_version"`
	Concurrency           Concurrency `toml:"concurrency"`
	GenerateDisplayTrait  bool        `toml:"generate_display_trait"`
	SingleVersionFile     interface{} `toml:"single_version_file"` // bool or path string
	DocsRsFeatures        []string    `toml:"docs_rs_features"`
}

// Status is the per-object generation decision: generate the binding,
// accept a hand-written manual one, or drop it entirely.
type Status string

const (
	StatusGenerate Status = "generate"
	StatusManual   Status = "manual"
	StatusIgnore   Status = "ignore"
)

// ObjectOverride is one `[[object]]` table, keyed by FullyQualifiedName.
type ObjectOverride struct {
	Name string `toml:"name"`

	Status      Status   `toml:"status"`
	Generate    []string `toml:"generate"`
	HasGenerate bool     `toml:"-"`
	IgnoreBuilder *bool  `toml:"ignore_builder"`

	// FinalType, when non-nil, forces post-processing pass 7's final_type
	// decision regardless of subclass count.
	FinalType *bool `toml:"final_type"`

	// Trait is the deprecated precursor to FinalType: `trait = false` meant
	// "treat as final". Accepted but superseded — see DESIGN.md for the
	// Open-Question resolution.
	Trait *bool `toml:"trait"`

	Concurrency Concurrency       `toml:"concurrency"`
	Rename      map[string]string `toml:"rename"`
	Derive      []string          `toml:"derive"`
	CfgCondition string           `toml:"cfg_condition"`

	Members []MemberOverride `toml:"member"`
}

// MemberOverride overrides a single enum/bitfield member's status.
type MemberOverride struct {
	Name   string `toml:"name"`
	Status Status `toml:"status"`
}

// Config is the fully decoded TOML document.
type Config struct {
	Options Options          `toml:"options"`
	Objects []ObjectOverride `toml:"object"`
}

// Load reads and decodes a TOML config file at path. Pointer-typed
// ObjectOverride fields (FinalType, Trait, IgnoreBuilder) decode to nil when
// absent from the document, which is how callers distinguish "not
// configured" from an explicit false.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var c Config
	if _, err := toml.Decode(string(data), &c); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	for i := range c.Objects {
		c.Objects[i].HasGenerate = c.Objects[i].Generate != nil
	}
	return &c, nil
}
