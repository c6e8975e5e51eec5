// SPDX-License-Identifier: MPL-2.0

package layer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidLayerName is the sentinel error wrapped by InvalidLayerNameError.
var ErrInvalidLayerName = errors.New("invalid layer name")

type (
	// Facets is the exposure descriptor written once per phase into a
	// layer's [types] table: launch exposes the layer to the run phase,
	// build to later build phases, cache across builds.
	Facets struct {
		Launch bool `toml:"launch"`
		Build  bool `toml:"build"`
		Cache  bool `toml:"cache"`
	}

	// Metadata is the string-keyed state persisted in a layer's [metadata]
	// table. Values are whatever TOML produced; use String for the common
	// string-valued keys.
	Metadata map[string]any

	// Layer is a named directory under the store root plus its metadata
	// file. Obtained from Store.Get; the directory exists by then.
	Layer struct {
		name string
		path string
		file string
	}

	// Store roots the layer store at the platform-provided layers
	// directory.
	Store struct {
		root string
	}

	// InvalidLayerNameError is returned when a layer name is empty or
	// would escape the layers directory.
	InvalidLayerNameError struct {
		Value string
	}

	// layerFile is the on-disk shape of <name>.toml.
	layerFile struct {
		Types    Facets   `toml:"types"`
		Metadata Metadata `toml:"metadata,omitempty"`
	}
)

// Error implements the error interface for InvalidLayerNameError.
func (e *InvalidLayerNameError) Error() string {
	return fmt.Sprintf("invalid layer name %q: must be non-empty and contain no path separators", e.Value)
}

// Unwrap returns ErrInvalidLayerName for errors.Is() compatibility.
func (e *InvalidLayerNameError) Unwrap() error { return ErrInvalidLayerName }

// String returns the string value stored under key, or "" when the key is
// absent or holds a non-string value.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// NewStore returns a Store rooted at the layers directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Get returns the layer with the given name, creating its directory (and
// the store root) if needed. Getting an existing layer leaves its content
// and metadata untouched.
func (s *Store) Get(name string) (*Layer, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, &InvalidLayerNameError{Value: name}
	}
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create layer directory %s: %w", path, err)
	}
	return &Layer{
		name: name,
		path: path,
		file: filepath.Join(s.root, name+".toml"),
	}, nil
}

// Root returns the layers directory the store is rooted at.
func (s *Store) Root() string { return s.root }

// Name returns the layer's name.
func (l *Layer) Name() string { return l.name }

// Path returns the layer's directory path.
func (l *Layer) Path() string { return l.path }

// File returns the path of a file inside the layer directory.
func (l *Layer) File(name string) string { return filepath.Join(l.path, name) }

// ReadMetadata returns the layer's persisted [metadata] table. A missing
// metadata file yields an empty Metadata, not an error: a layer that was
// never written has simply recorded nothing yet.
func (l *Layer) ReadMetadata() (Metadata, error) {
	data, err := os.ReadFile(l.file)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, nil
		}
		return nil, fmt.Errorf("failed to read layer metadata %s: %w", l.file, err)
	}

	var lf layerFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse layer metadata %s: %w", l.file, err)
	}
	if lf.Metadata == nil {
		lf.Metadata = Metadata{}
	}
	return lf.Metadata, nil
}

// WriteMetadata persists the layer's facets and metadata to <name>.toml,
// replacing any previous content. The pipeline calls this before starting
// the file-producing operation the metadata describes.
func (l *Layer) WriteMetadata(facets Facets, metadata Metadata) error {
	data, err := toml.Marshal(layerFile{Types: facets, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("failed to encode layer metadata for %s: %w", l.name, err)
	}
	if err := os.WriteFile(l.file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layer metadata %s: %w", l.file, err)
	}
	return nil
}
