// SPDX-License-Identifier: MPL-2.0

package detect

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"fnbuild/internal/buildcfg"
	"fnbuild/internal/issue"
	"fnbuild/internal/layer"
	"fnbuild/internal/phase"
)

// Invoker spawns the function detector bundled inside the runtime artifact
// and turns its exit status and manifest into a UnitManifest.
type Invoker struct {
	launcher []string
	log      *phase.Logger
}

// NewInvoker creates an Invoker that starts the artifact through launcher
// (the argv prefix, typically ["java", "-jar"]) and reports through log. An
// empty launcher falls back to the default.
func NewInvoker(launcher []string, log *phase.Logger) *Invoker {
	if len(launcher) == 0 {
		launcher = buildcfg.DefaultLauncher()
	}
	return &Invoker{launcher: slices.Clone(launcher), log: log}
}

// Detect runs the detector against appDir with l as its output layer.
//
// The layer's facets and metadata are persisted before the spawn. The
// detector inherits the phase's output streams, so everything it prints
// lands in the build narrative right above any failure block. Every
// non-success outcome is fatal; nothing is retried.
func (inv *Invoker) Detect(ctx context.Context, l *layer.Layer, artifactPath, appDir string) (*UnitManifest, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Detection output is never reused across builds.
	facets := layer.Facets{Launch: true, Build: false, Cache: false}
	if err := l.WriteMetadata(facets, layer.Metadata{}); err != nil {
		return nil, err
	}

	argv := append(slices.Clone(inv.launcher), artifactPath, "bundle", appDir, l.Path())
	inv.log.Diag().Debug("invoking detector", "argv", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = appDir
	cmd.Stdout = inv.log.Out()
	cmd.Stderr = inv.log.ErrOut()

	code := 0
	if err := cmd.Run(); err != nil {
		exitErr, ok := errors.AsType[*exec.ExitError](err)
		if !ok {
			return nil, fmt.Errorf("failed to invoke function detector: %w", err)
		}
		code = exitErr.ExitCode()
	}
	inv.log.Diag().Debug("detector exited", "code", code)

	if err := inv.classify(code); err != nil {
		return nil, err
	}
	inv.log.Info("Detection successful")

	manifest, err := ReadManifest(l.Path())
	if err != nil {
		return nil, inv.log.Error("Function manifest invalid", manifestInvalidBody(err)).
			WithIssue(issue.FunctionManifestInvalidId)
	}
	return manifest, nil
}

// classify renders the failure block for every non-success outcome and
// returns the phase failure; success returns nil.
func (inv *Invoker) classify(code int) error {
	switch Classify(code) {
	case Success:
		return nil
	case NoFunctionsFound:
		return inv.log.Error("No functions found",
			"Your project does not seem to contain any Java functions.\n"+
				"The output above might contain information about issues with your function.").
			WithIssue(issue.NoFunctionsFoundId)
	case MultipleFunctionsFound:
		return inv.log.Error("Multiple functions found",
			"Your project contains multiple Java functions.\n"+
				"Currently, only projects that contain exactly one (1) function are supported.").
			WithIssue(issue.MultipleFunctionsFoundId)
	case InternalError:
		return inv.log.Error("Detection failed",
			fmt.Sprintf(`Function detection failed with internal error "%d"`, code)).
			WithIssue(issue.DetectorInternalErrorId)
	default:
		return inv.log.Error("Detection failed", unexpectedExitBody(code)).
			WithIssue(issue.DetectorUnexpectedExitId)
	}
}

func unexpectedExitBody(code int) string {
	if code < 0 {
		return "Function detection was terminated by a signal before it could report an error code.\n" +
			"The output above might contain hints what caused this error to happen."
	}
	return fmt.Sprintf("Function detection failed with unexpected error code %d.\n"+
		"The output above might contain hints what caused this error to happen.", code)
}

func manifestInvalidBody(err error) string {
	return fmt.Sprintf("The function detector reported success but its manifest could not be used:\n%v\n\n"+
		"This usually indicates a defect in the function runtime. "+
		"Please contact us should the error persist.", err)
}
