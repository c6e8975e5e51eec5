// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"fnbuild/internal/buildcfg"
	"fnbuild/internal/issue"
	"fnbuild/internal/layer"
	"fnbuild/internal/phase"
	"fnbuild/internal/testutil"
)

const detectorManifest = `[function]
class = "com.example.functions.Capitalizer"
payload_class = "java.lang.String"
payload_media_type = "application/json"
return_class = "java.lang.String"
return_media_type = "application/json"
`

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping: fake detector scripts require a POSIX shell")
	}
}

// detectorScript writes body as an executable fake detector and returns a
// launcher that invokes it directly.
func detectorScript(t *testing.T, body string) []string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detector.sh")
	testutil.MustWriteScript(t, path, body)
	return []string{path}
}

func newBundleLayer(t *testing.T) *layer.Layer {
	t.Helper()
	l, err := layer.NewStore(t.TempDir()).Get("function-bundle")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	return l
}

func TestDetectSuccess(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	launcher := detectorScript(t, `#!/bin/sh
cat > "$4/function-bundle.toml" << 'MANIFEST'
`+detectorManifest+`MANIFEST
exit 0
`)
	var out bytes.Buffer
	inv := NewInvoker(launcher, phase.NewLogger(&out, &bytes.Buffer{}, false))
	l := newBundleLayer(t)

	m, err := inv.Detect(context.Background(), l, "/layers/rt/runtime.jar", t.TempDir())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if m.Class != "com.example.functions.Capitalizer" {
		t.Errorf("Class = %q", m.Class)
	}
	if m.PayloadClass != "java.lang.String" {
		t.Errorf("PayloadClass = %q", m.PayloadClass)
	}
	if !strings.Contains(out.String(), "Detection successful") {
		t.Errorf("output missing success line:\n%s", out.String())
	}
}

// The detector receives exactly (artifact, "bundle", appDir, layerDir) after
// the launcher prefix.
func TestDetectArgumentContract(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	argsFile := filepath.Join(t.TempDir(), "args.txt")
	launcher := detectorScript(t, `#!/bin/sh
printf '%s\n' "$@" > `+argsFile+`
cat > "$4/function-bundle.toml" << 'MANIFEST'
`+detectorManifest+`MANIFEST
exit 0
`)
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))
	l := newBundleLayer(t)
	appDir := t.TempDir()

	if _, err := inv.Detect(context.Background(), l, "/layers/rt/runtime.jar", appDir); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	got := strings.Split(strings.TrimSpace(string(testutil.MustReadFile(t, argsFile))), "\n")
	want := []string{"/layers/rt/runtime.jar", "bundle", appDir, l.Path()}
	if !slices.Equal(got, want) {
		t.Errorf("detector argv = %v, want %v", got, want)
	}
}

// The bundle layer's facets have to be on disk before the detector starts
// writing into the layer.
func TestDetectWritesFacetsBeforeSpawn(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	launcher := detectorScript(t, `#!/bin/sh
cp "${4%/}.toml" "$4/facets-at-spawn" 2>/dev/null || : > "$4/facets-at-spawn"
cat > "$4/function-bundle.toml" << 'MANIFEST'
`+detectorManifest+`MANIFEST
exit 0
`)
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))
	l := newBundleLayer(t)

	if _, err := inv.Detect(context.Background(), l, "/layers/rt/runtime.jar", t.TempDir()); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	seen := string(testutil.MustReadFile(t, l.File("facets-at-spawn")))
	for _, want := range []string{"launch = true", "build = false", "cache = false"} {
		if !strings.Contains(seen, want) {
			t.Errorf("facets at spawn time missing %q:\n%s", want, seen)
		}
	}
}

func TestDetectFailureOutcomes(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	tests := []struct {
		name      string
		code      int
		wantTitle string
		wantIssue issue.Id
		wantBody  string
	}{
		{
			name:      "no functions",
			code:      1,
			wantTitle: "No functions found",
			wantIssue: issue.NoFunctionsFoundId,
			wantBody:  "does not seem to contain any Java functions",
		},
		{
			name:      "multiple functions",
			code:      2,
			wantTitle: "Multiple functions found",
			wantIssue: issue.MultipleFunctionsFoundId,
			wantBody:  "exactly one (1) function",
		},
		{
			name:      "internal error lower bound",
			code:      3,
			wantTitle: "Detection failed",
			wantIssue: issue.DetectorInternalErrorId,
			wantBody:  `internal error "3"`,
		},
		{
			name:      "internal error upper bound",
			code:      6,
			wantTitle: "Detection failed",
			wantIssue: issue.DetectorInternalErrorId,
			wantBody:  `internal error "6"`,
		},
		{
			name:      "unexpected code",
			code:      42,
			wantTitle: "Detection failed",
			wantIssue: issue.DetectorUnexpectedExitId,
			wantBody:  "unexpected error code 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			launcher := detectorScript(t, fmt.Sprintf("#!/bin/sh\nexit %d\n", tt.code))
			var errOut bytes.Buffer
			inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &errOut, false))

			_, err := inv.Detect(context.Background(), newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir())
			if err == nil {
				t.Fatalf("Detect() with exit %d returned nil error", tt.code)
			}

			var failure *phase.Failure
			if !errors.As(err, &failure) {
				t.Fatalf("Detect() error = %T, want *phase.Failure", err)
			}
			if failure.Title != tt.wantTitle {
				t.Errorf("failure title = %q, want %q", failure.Title, tt.wantTitle)
			}
			if failure.IssueID != tt.wantIssue {
				t.Errorf("failure issue = %v, want %v", failure.IssueID, tt.wantIssue)
			}
			if !strings.Contains(errOut.String(), tt.wantBody) {
				t.Errorf("error output missing %q:\n%s", tt.wantBody, errOut.String())
			}
		})
	}
}

func TestDetectSignalTermination(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	launcher := detectorScript(t, "#!/bin/sh\nkill -TERM $$\n")
	var errOut bytes.Buffer
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &errOut, false))

	_, err := inv.Detect(context.Background(), newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir())
	if err == nil {
		t.Fatal("Detect() after signal termination returned nil error")
	}

	var failure *phase.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("Detect() error = %T, want *phase.Failure", err)
	}
	if failure.IssueID != issue.DetectorUnexpectedExitId {
		t.Errorf("failure issue = %v, want %v", failure.IssueID, issue.DetectorUnexpectedExitId)
	}
	if !strings.Contains(errOut.String(), "terminated by a signal") {
		t.Errorf("error output missing signal text:\n%s", errOut.String())
	}
}

// Exit 0 without a manifest is a manifest failure, not a success.
func TestDetectMissingManifest(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	launcher := detectorScript(t, "#!/bin/sh\nexit 0\n")
	var errOut bytes.Buffer
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &errOut, false))

	_, err := inv.Detect(context.Background(), newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir())
	if err == nil {
		t.Fatal("Detect() without manifest returned nil error")
	}

	var failure *phase.Failure
	if !errors.As(err, &failure) {
		t.Fatalf("Detect() error = %T, want *phase.Failure", err)
	}
	if failure.Title != "Function manifest invalid" {
		t.Errorf("failure title = %q", failure.Title)
	}
	if failure.IssueID != issue.FunctionManifestInvalidId {
		t.Errorf("failure issue = %v, want %v", failure.IssueID, issue.FunctionManifestInvalidId)
	}
	if !strings.Contains(errOut.String(), "manifest could not be used") {
		t.Errorf("error output missing manifest text:\n%s", errOut.String())
	}
}

// The detector's own output is streamed through, so its diagnostics appear
// right above any failure block.
func TestDetectStreamsDetectorOutput(t *testing.T) {
	t.Parallel()
	requirePosixShell(t)

	launcher := detectorScript(t, `#!/bin/sh
echo "scanning classpath for functions"
echo "skipped class without annotation" >&2
exit 1
`)
	var out, errOut bytes.Buffer
	inv := NewInvoker(launcher, phase.NewLogger(&out, &errOut, false))

	if _, err := inv.Detect(context.Background(), newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir()); err == nil {
		t.Fatal("Detect() returned nil error")
	}

	if !strings.Contains(out.String(), "scanning classpath for functions") {
		t.Errorf("detector stdout not streamed:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "skipped class without annotation") {
		t.Errorf("detector stderr not streamed:\n%s", errOut.String())
	}
}

func TestDetectLauncherNotFound(t *testing.T) {
	t.Parallel()

	launcher := []string{filepath.Join(t.TempDir(), "absent-java")}
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))

	_, err := inv.Detect(context.Background(), newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir())
	if err == nil {
		t.Fatal("Detect() with missing launcher returned nil error")
	}

	var failure *phase.Failure
	if errors.As(err, &failure) {
		t.Errorf("spawn failure classified as a detection outcome: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to invoke function detector") {
		t.Errorf("error = %v", err)
	}
}

func TestDetectCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inv := NewInvoker([]string{"/bin/sh"}, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))
	if _, err := inv.Detect(ctx, newBundleLayer(t), "/layers/rt/runtime.jar", t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Detect() error = %v, want context.Canceled", err)
	}
}

func TestNewInvokerDefaultLauncher(t *testing.T) {
	t.Parallel()

	inv := NewInvoker(nil, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))
	if !slices.Equal(inv.launcher, buildcfg.DefaultLauncher()) {
		t.Errorf("launcher = %v, want %v", inv.launcher, buildcfg.DefaultLauncher())
	}
}

// The launcher slice handed to the constructor stays isolated from later
// caller mutation.
func TestNewInvokerClonesLauncher(t *testing.T) {
	t.Parallel()

	launcher := []string{"java", "-jar"}
	inv := NewInvoker(launcher, phase.NewLogger(&bytes.Buffer{}, &bytes.Buffer{}, false))
	launcher[0] = "mutated"

	if inv.launcher[0] != "java" {
		t.Errorf("launcher[0] = %q, want %q", inv.launcher[0], "java")
	}
}
