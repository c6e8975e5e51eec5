// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"errors"
	"fmt"

	"fnbuild/internal/buildcfg"
	"fnbuild/internal/cnb"
	"fnbuild/internal/detect"
	"fnbuild/internal/issue"
	"fnbuild/internal/launch"
	"fnbuild/internal/layer"
	"fnbuild/internal/phase"
	"fnbuild/internal/provision"
)

// Layer names contributed by the build phase. The runtime layer persists
// across builds; the bundle layer is rebuilt every time.
const (
	RuntimeLayerName = "sf-fx-runtime-java"
	BundleLayerName  = "function-bundle"
)

// Orchestrator runs the build phase. The descriptor provider and the
// fetcher are injected; the domain components are constructed per run
// because their wiring depends on the loaded descriptor.
type Orchestrator struct {
	descriptors buildcfg.Provider
	fetcher     provision.Fetcher
	log         *phase.Logger
}

// New creates an Orchestrator reporting through log.
func New(descriptors buildcfg.Provider, fetcher provision.Fetcher, log *phase.Logger) *Orchestrator {
	return &Orchestrator{
		descriptors: descriptors,
		fetcher:     fetcher,
		log:         log,
	}
}

// Run executes the full build phase for the given platform context.
//
// Order matters: the descriptor is loaded and validated before any network
// activity, the runtime layer before detection, detection before the
// launch description. Every failure is terminal; errors carrying a
// *phase.Failure have already rendered their block.
func (o *Orchestrator) Run(ctx context.Context, build cnb.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := build.Validate(); err != nil {
		return fmt.Errorf("invalid build context: %w", err)
	}

	bp, err := o.descriptors.Load(ctx, buildcfg.LoadOptions{BuildpackDir: build.BuildpackDir})
	if err != nil {
		var keyErr *buildcfg.MissingRuntimeKeyError
		if errors.As(err, &keyErr) {
			return o.log.Error("Runtime descriptor missing",
				fmt.Sprintf("The buildpack descriptor does not declare %q.\n"+
					"The function runtime cannot be provisioned without it.", keyErr.Key)).
				WithIssue(issue.RuntimeConfigMissingId)
		}
		return err
	}

	store := layer.NewStore(build.LayersDir)

	o.log.Header("Installing Java function runtime")
	runtimeLayer, err := store.Get(RuntimeLayerName)
	if err != nil {
		return err
	}
	provisioner := provision.NewRuntimeProvisioner(o.fetcher, o.log)
	provisioned, err := provisioner.Ensure(ctx, runtimeLayer, bp.Runtime)
	if err != nil {
		return err
	}

	o.log.Header("Detecting function")
	bundleLayer, err := store.Get(BundleLayerName)
	if err != nil {
		return err
	}
	invoker := detect.NewInvoker(bp.Runtime.Launcher, o.log)
	manifest, err := invoker.Detect(ctx, bundleLayer, provisioned.ArtifactPath, build.AppDir)
	if err != nil {
		return err
	}

	o.log.Header("Detected function: " + manifest.Class)
	o.log.Info("Payload type: " + manifest.PayloadClass)
	o.log.Info("Return type: " + manifest.ReturnClass)

	process := launch.NewAssembler(bp.Runtime.Launcher, 0).
		Assemble(provisioned.ArtifactPath, bundleLayer.Path())
	if err := (launch.Launch{Processes: []launch.Process{process}}).Write(build.LayersDir); err != nil {
		return err
	}
	o.log.Debug("launch description written for process type " + process.Type.String())

	return nil
}
