// SPDX-License-Identifier: MPL-2.0

package detect

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"fnbuild/internal/issue"
	"fnbuild/pkg/cueutil"
)

// ManifestFileName is the file the detector writes into its layer when it
// finds exactly one function.
const ManifestFileName = "function-bundle.toml"

//go:embed function_bundle_schema.cue
var manifestSchema []byte

// UnitManifest describes the single deployable function the detector
// found.
type UnitManifest struct {
	// Class is the fully qualified name of the function class.
	Class string
	// PayloadClass and PayloadMediaType describe the function's input.
	PayloadClass     string
	PayloadMediaType string
	// ReturnClass and ReturnMediaType describe the function's output.
	ReturnClass     string
	ReturnMediaType string
}

// manifestDocument is the on-disk shape of function-bundle.toml.
type manifestDocument struct {
	Function manifestFunction `json:"function"`
}

type manifestFunction struct {
	Class            string `json:"class"`
	PayloadClass     string `json:"payload_class"`
	PayloadMediaType string `json:"payload_media_type"`
	ReturnClass      string `json:"return_class"`
	ReturnMediaType  string `json:"return_media_type"`
}

// ReadManifest loads and validates the manifest the detector left in
// layerPath. A missing or malformed file is fatal here even though the
// detector exited successfully; the two failure modes stay distinct from
// the exit-code outcomes.
func ReadManifest(layerPath string) (*UnitManifest, error) {
	path := filepath.Join(layerPath, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read function manifest").
			WithResource(path).
			WithSuggestion("The detector reported success but left no manifest; rerun with debug logging to see its output").
			Wrap(err).
			BuildError()
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var document map[string]any
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse function manifest").
			WithResource(path).
			WithSuggestion("Check the file for TOML syntax errors").
			Wrap(err).
			BuildError()
	}

	res, err := cueutil.ValidateAndDecode[manifestDocument](manifestSchema, document, "#FunctionBundle",
		cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	fn := res.Value.Function
	return &UnitManifest{
		Class:            fn.Class,
		PayloadClass:     fn.PayloadClass,
		PayloadMediaType: fn.PayloadMediaType,
		ReturnClass:      fn.ReturnClass,
		ReturnMediaType:  fn.ReturnMediaType,
	}, nil
}
