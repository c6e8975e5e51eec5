// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fnbuild/internal/issue"
	"fnbuild/internal/testutil"
)

const validManifest = `[function]
class = "com.example.functions.Capitalizer"
payload_class = "java.lang.String"
payload_media_type = "application/json"
return_class = "java.lang.String"
return_media_type = "application/json"
`

func TestReadManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFileName), []byte(validManifest))

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}

	if m.Class != "com.example.functions.Capitalizer" {
		t.Errorf("Class = %q", m.Class)
	}
	if m.PayloadClass != "java.lang.String" {
		t.Errorf("PayloadClass = %q", m.PayloadClass)
	}
	if m.PayloadMediaType != "application/json" {
		t.Errorf("PayloadMediaType = %q", m.PayloadMediaType)
	}
	if m.ReturnClass != "java.lang.String" {
		t.Errorf("ReturnClass = %q", m.ReturnClass)
	}
	if m.ReturnMediaType != "application/json" {
		t.Errorf("ReturnMediaType = %q", m.ReturnMediaType)
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadManifest(t.TempDir())
	if err == nil {
		t.Fatal("ReadManifest() on empty layer returned nil error")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("ReadManifest() error = %T, want *issue.ActionableError", err)
	}
	if actionable.Operation != "read function manifest" {
		t.Errorf("Operation = %q", actionable.Operation)
	}
	if !actionable.HasSuggestions() {
		t.Error("missing-manifest error carries no suggestions")
	}
}

func TestReadManifestMalformedToml(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFileName), []byte("[function\nclass = oops"))

	_, err := ReadManifest(dir)
	if err == nil {
		t.Fatal("ReadManifest() on malformed TOML returned nil error")
	}

	var actionable *issue.ActionableError
	if !errors.As(err, &actionable) {
		t.Fatalf("ReadManifest() error = %T, want *issue.ActionableError", err)
	}
	if actionable.Operation != "parse function manifest" {
		t.Errorf("Operation = %q", actionable.Operation)
	}
}

func TestReadManifestMissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		manifest string
	}{
		{
			name:     "no function table",
			manifest: `other = "value"` + "\n",
		},
		{
			name: "missing class",
			manifest: `[function]
payload_class = "java.lang.String"
payload_media_type = "application/json"
return_class = "java.lang.String"
return_media_type = "application/json"
`,
		},
		{
			name: "missing return_media_type",
			manifest: `[function]
class = "com.example.Fn"
payload_class = "java.lang.String"
payload_media_type = "application/json"
return_class = "java.lang.String"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.MustWriteFile(t, filepath.Join(dir, ManifestFileName), []byte(tt.manifest))

			if _, err := ReadManifest(dir); err == nil {
				t.Error("ReadManifest() with incomplete manifest returned nil error")
			}
		})
	}
}

func TestReadManifestWrongFieldType(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := strings.Replace(validManifest, `class = "com.example.functions.Capitalizer"`, "class = 42", 1)
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFileName), []byte(manifest))

	_, err := ReadManifest(dir)
	if err == nil {
		t.Fatal("ReadManifest() with non-string class returned nil error")
	}
	if !strings.Contains(err.Error(), "class") {
		t.Errorf("error does not name the offending field: %v", err)
	}
}

// Unknown keys pass through: a newer detector may extend the manifest.
func TestReadManifestToleratesUnknownKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := "schema_version = \"2\"\n" + validManifest + "runtime_hint = \"jvm\"\n\n[function.details]\nmodule = \"app\"\n"
	testutil.MustWriteFile(t, filepath.Join(dir, ManifestFileName), []byte(manifest))

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatalf("ReadManifest() with extra keys error = %v", err)
	}
	if m.Class != "com.example.functions.Capitalizer" {
		t.Errorf("Class = %q", m.Class)
	}
}
