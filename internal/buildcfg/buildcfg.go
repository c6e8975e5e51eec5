// SPDX-License-Identifier: MPL-2.0

package buildcfg

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"fnbuild/internal/issue"
	"fnbuild/pkg/cueutil"
	"fnbuild/pkg/types"
)

//go:embed buildpack_schema.cue
var descriptorSchema []byte

// descriptorDocument mirrors the buildpack.toml layout for viper decoding.
type descriptorDocument struct {
	API       string             `mapstructure:"api"`
	Buildpack Info               `mapstructure:"buildpack"`
	Metadata  descriptorMetadata `mapstructure:"metadata"`
}

type descriptorMetadata struct {
	Runtime runtimeMetadata `mapstructure:"runtime"`
}

type runtimeMetadata struct {
	URL      string   `mapstructure:"url"`
	Sha256   string   `mapstructure:"sha256"`
	Verify   bool     `mapstructure:"verify"`
	Launcher []string `mapstructure:"launcher"`
}

// requiredRuntimeKeys are checked for presence on the unified CUE value.
// Presence must be decided before the viper merge: defaults fill absent
// keys and would mask a descriptor that never declared them.
var requiredRuntimeKeys = []string{
	"metadata.runtime",
	"metadata.runtime.url",
	"metadata.runtime.sha256",
}

// loadDescriptor reads buildpack.toml from dir, validates it against the
// embedded schema, merges defaults, and returns the typed descriptor.
// Every failure here is fatal and happens before any network activity.
func loadDescriptor(ctx context.Context, dir string) (*Buildpack, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load buildpack descriptor canceled: %w", ctx.Err())
	default:
	}

	path := filepath.Join(dir, DescriptorFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load buildpack descriptor").
			WithResource(path).
			WithSuggestion("Check that the buildpack directory is intact").
			WithSuggestion("Re-package the buildpack if buildpack.toml was stripped").
			Wrap(err).
			BuildError()
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var document map[string]any
	if err := toml.Unmarshal(data, &document); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse buildpack descriptor").
			WithResource(path).
			WithSuggestion("Check the file for TOML syntax errors").
			Wrap(err).
			BuildError()
	}

	res, err := cueutil.ValidateAndDecode[map[string]any](descriptorSchema, document, "#Buildpack",
		cueutil.WithConcrete(false),
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate buildpack descriptor").
			WithResource(path).
			WithSuggestion("Compare the descriptor against the documented buildpack.toml shape").
			Wrap(err).
			BuildError()
	}

	for _, key := range requiredRuntimeKeys {
		if !res.Unified.LookupPath(cue.ParsePath(key)).Exists() {
			return nil, &MissingRuntimeKeyError{Key: key}
		}
	}

	v := viper.New()
	v.SetDefault("metadata.runtime.verify", false)
	v.SetDefault("metadata.runtime.launcher", DefaultLauncher())

	if err := v.MergeConfigMap(*res.Value); err != nil {
		return nil, fmt.Errorf("failed to merge buildpack descriptor: %w", err)
	}

	var doc descriptorDocument
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse buildpack descriptor: %w", err)
	}

	bp := &Buildpack{
		API:  doc.API,
		Info: doc.Buildpack,
		Runtime: RuntimeDescriptor{
			URL: doc.Metadata.Runtime.URL,
			// Digest comparisons are exact; fold to the hex encoder's case.
			ExpectedFingerprint: types.Sha256Digest(strings.ToLower(doc.Metadata.Runtime.Sha256)),
			Verify:              doc.Metadata.Runtime.Verify,
			Launcher:            doc.Metadata.Runtime.Launcher,
		},
	}

	if err := bp.Runtime.ExpectedFingerprint.Validate(); err != nil {
		return nil, &cueutil.ValidationError{
			FilePath:   path,
			CUEPath:    "metadata.runtime.sha256",
			Message:    err.Error(),
			Suggestion: "declare the artifact's hex-encoded SHA-256 digest, or an empty string to disable caching",
		}
	}

	if err := bp.Validate(); err != nil {
		return nil, err
	}

	return bp, nil
}
