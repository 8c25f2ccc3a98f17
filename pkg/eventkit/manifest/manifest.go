// Package manifest loads declarative event documentation from YAML or
// JSON files. A manifest is an explicit, author-maintained counterpart
// to the extract subpackage's source inference: both describe which
// events a type raises, but a manifest also carries descriptions and
// handler-argument documentation that source alone cannot express.
//
// Example manifest:
//
//	type: Connection
//	events:
//	  - name: connected
//	    description: Raised after the transport handshake completes.
//	    params:
//	      - Remote address of the peer.
//	  - name: disconnected
//	    description: Raised when the transport drops.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/eventkit/pkg/eventkit"
)

// Entry documents a single event.
type Entry struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Params      []string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Manifest documents the events of one type.
type Manifest struct {
	Type   string  `yaml:"type" json:"type"`
	Events []Entry `yaml:"events" json:"events"`
}

// Load reads a manifest from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Manifest{}, fmt.Errorf("unsupported manifest file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Manifest.
func FromYAML(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse yaml: %w", err)
	}
	return m, nil
}

// FromJSON parses JSON data into a Manifest.
func FromJSON(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse json: %w", err)
	}
	return m, nil
}

// Validate checks manifest integrity: a type name is required, every
// event needs a name, and event names must be unique.
func (m Manifest) Validate() error {
	if m.Type == "" {
		return fmt.Errorf("manifest type is required")
	}
	seen := make(map[string]struct{}, len(m.Events))
	for i, evt := range m.Events {
		if evt.Name == "" {
			return fmt.Errorf("event %d: name is required", i)
		}
		if _, dup := seen[evt.Name]; dup {
			return fmt.Errorf("duplicate event name: %s", evt.Name)
		}
		seen[evt.Name] = struct{}{}
	}
	return nil
}

// Apply annotates an emitter with every manifest entry, in manifest
// order. Existing annotations for the same names are replaced.
func (m Manifest) Apply(e *eventkit.Emitter) {
	for _, evt := range m.Events {
		e.DocumentEvent(evt.Name, evt.Description, evt.Params...)
	}
}
