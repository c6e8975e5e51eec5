// SPDX-License-Identifier: MPL-2.0

package cnb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// VarBuildpackDir is the environment variable through which the platform
	// tells a buildpack executable where its own root directory is mounted.
	VarBuildpackDir = "CNB_BUILDPACK_DIR"

	// VarDebug enables verbose diagnostic logging when present with any
	// non-empty value, either in the process environment or as a platform
	// env file. It changes nothing but log output.
	VarDebug = "BP_DEBUG"
)

// ErrMissingBuildpackDir is returned when CNB_BUILDPACK_DIR is absent from
// the process environment.
var ErrMissingBuildpackDir = errors.New(VarBuildpackDir + " is not set")

// Context carries the directories a single build-phase invocation operates
// on. The platform supplies LayersDir, PlatformDir, and PlanPath as the
// three positional arguments of bin/build; AppDir is the working directory;
// BuildpackDir comes from CNB_BUILDPACK_DIR.
type Context struct {
	LayersDir    string
	PlatformDir  string
	PlanPath     string
	AppDir       string
	BuildpackDir string
}

// ResolveContext builds a Context from the positional arguments of a build
// invocation. It resolves every directory to an absolute path so later
// chdir-sensitive steps (the detector runs with its own working directory)
// cannot misread them.
func ResolveContext(args []string) (Context, error) {
	if len(args) != 3 {
		return Context{}, fmt.Errorf("expected 3 positional arguments <layers> <platform> <plan>, got %d", len(args))
	}

	appDir, err := os.Getwd()
	if err != nil {
		return Context{}, fmt.Errorf("failed to resolve app directory: %w", err)
	}

	buildpackDir, ok := os.LookupEnv(VarBuildpackDir)
	if !ok || buildpackDir == "" {
		return Context{}, ErrMissingBuildpackDir
	}

	ctx := Context{
		LayersDir:    args[0],
		PlatformDir:  args[1],
		PlanPath:     args[2],
		AppDir:       appDir,
		BuildpackDir: buildpackDir,
	}
	for _, p := range []*string{&ctx.LayersDir, &ctx.PlatformDir, &ctx.PlanPath, &ctx.BuildpackDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return Context{}, fmt.Errorf("failed to resolve absolute path for %q: %w", *p, err)
		}
		*p = abs
	}
	return ctx, nil
}

// Validate returns an error if any context directory is empty or if the app
// directory does not exist. The layers directory is not required to exist
// yet; the layer store creates it on first write.
func (c Context) Validate() error {
	switch {
	case c.LayersDir == "":
		return errors.New("layers directory is empty")
	case c.PlatformDir == "":
		return errors.New("platform directory is empty")
	case c.PlanPath == "":
		return errors.New("build plan path is empty")
	case c.AppDir == "":
		return errors.New("app directory is empty")
	case c.BuildpackDir == "":
		return errors.New("buildpack directory is empty")
	}
	if _, err := os.Stat(c.AppDir); err != nil {
		return fmt.Errorf("app directory is not accessible: %w", err)
	}
	return nil
}

// ReadPlatformEnv reads the per-variable files under <platform>/env: each
// file's name is a variable name and its full contents are the value. A
// missing env directory yields an empty map, not an error, because the
// platform may legitimately provide no extra variables.
func ReadPlatformEnv(platformDir string) (map[string]string, error) {
	envDir := filepath.Join(platformDir, "env")
	entries, err := os.ReadDir(envDir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read platform env directory: %w", err)
	}

	env := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		value, err := os.ReadFile(filepath.Join(envDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read platform env file %s: %w", entry.Name(), err)
		}
		env[entry.Name()] = string(value)
	}
	return env, nil
}

// DebugEnabled reports whether verbose diagnostic logging was requested,
// either through the process environment or through a platform env file.
func DebugEnabled(platformEnv map[string]string) bool {
	if v := os.Getenv(VarDebug); v != "" {
		return true
	}
	return platformEnv[VarDebug] != ""
}
