// This file is part of nhshield.
//
// nhshield is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// nhshield is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with nhshield.  If not, see <https://www.gnu.org/licenses/>.

// Package settings loads and saves the persisted configuration of the shield
// patch. The document is stored as TOML:
//
//	mode = "child"
//
//	[hand_matrix]
//	r_x = 0.0
//	r_y = 0.0
//	r_z = 155.0
//	t_x = 512.0
//	t_y = -335.0
//	t_z = 0.0
//	s = 1.0
//
//	[back_matrix]
//	...
//
// A settings file that cannot be used is never fatal. Load() returns the
// default document alongside the error and the caller decides how to report
// it.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/nhshield/curated"
	"github.com/jetsetilly/nhshield/paths"
	"github.com/jetsetilly/nhshield/transform"
)

// ConfigLoadFailure is returned by Load() when a settings file exists but
// cannot be used. The document returned with the error is the default
// document.
const ConfigLoadFailure = "settings: %v"

// Filename of the settings file in the resource directory.
const Filename = "nhs_settings.toml"

// Mode is the shield arrangement equipped when a game is loaded.
type Mode string

// List of valid Mode values.
const (
	Child Mode = "child"
	Adult Mode = "adult"
)

// Valid returns true if the Mode is one of the listed values.
func (m Mode) Valid() bool {
	return m == Child || m == Adult
}

// Document is the settings file.
type Document struct {
	Mode       Mode             `toml:"mode"`
	HandMatrix transform.Values `toml:"hand_matrix"`
	BackMatrix transform.Values `toml:"back_matrix"`
}

// Default returns the document used when there is no settings file.
func Default() Document {
	return Document{
		Mode:       Child,
		HandMatrix: transform.HandDefault,
		BackMatrix: transform.BackDefault,
	}
}

// DefaultPath returns the location of the settings file in the resource
// directory.
func DefaultPath() string {
	return paths.ResourcePath(Filename)
}

// every key must be present in the document
var tables = []string{"hand_matrix", "back_matrix"}
var keys = []string{"r_x", "r_y", "r_z", "t_x", "t_y", "t_z", "s"}

// Load the settings file at path. A missing file is not an error.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), curated.Errorf(ConfigLoadFailure, err)
	}
	return Parse(data)
}

// Parse a settings document. Returns the default document and a
// ConfigLoadFailure error if the document is malformed or incomplete.
func Parse(data []byte) (Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return Default(), curated.Errorf(ConfigLoadFailure, err)
	}

	var missing []string
	if !md.IsDefined("mode") {
		missing = append(missing, "mode")
	}
	for _, t := range tables {
		for _, k := range keys {
			if !md.IsDefined(t, k) {
				missing = append(missing, fmt.Sprintf("%s.%s", t, k))
			}
		}
	}
	if len(missing) > 0 {
		return Default(), curated.Errorf(ConfigLoadFailure,
			fmt.Sprintf("missing fields: %s", strings.Join(missing, ", ")))
	}

	if !doc.Mode.Valid() {
		return Default(), curated.Errorf(ConfigLoadFailure,
			fmt.Sprintf("unrecognised mode: %q", doc.Mode))
	}

	return doc, nil
}

// Save the document to path, creating the resource directory if necessary.
func Save(path string, doc Document) error {
	if err := paths.EnsureResourceDir(path); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}
