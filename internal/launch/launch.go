// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"mvdan.cc/sh/v3/syntax"

	"fnbuild/internal/buildcfg"
	"fnbuild/pkg/types"
)

// FileName is the platform-read file describing launch processes, written
// into the layers directory.
const FileName = "launch.toml"

type (
	// Process is one launchable entry in launch.toml. Command is a shell
	// line interpreted by the launcher at run time.
	Process struct {
		Type    types.ProcessType `toml:"type"`
		Command string            `toml:"command"`
		Args    []string          `toml:"args"`
		Default bool              `toml:"default"`
	}

	// Launch is the full launch description.
	Launch struct {
		Processes []Process `toml:"processes"`
	}

	// Assembler builds the web process for a provisioned runtime artifact
	// and a detected function layer.
	Assembler struct {
		launcher []string
		port     types.ListenPort
	}
)

// NewAssembler creates an Assembler using launcher as the argv prefix of
// the emitted command. An empty launcher and a zero port fall back to the
// defaults ("java -jar", port 8080).
func NewAssembler(launcher []string, port types.ListenPort) *Assembler {
	if len(launcher) == 0 {
		launcher = buildcfg.DefaultLauncher()
	}
	if port == 0 {
		port = types.DefaultListenPort
	}
	return &Assembler{launcher: slices.Clone(launcher), port: port}
}

// Assemble produces the single default web process. The artifact and unit
// layer paths are shell-quoted; launcher tokens pass through raw so a
// descriptor may deliberately use shell constructs in its launcher. Pure
// construction, no failure mode.
func (a *Assembler) Assemble(artifactPath, unitDir string) Process {
	parts := make([]string, 0, len(a.launcher)+5)
	parts = append(parts, a.launcher...)
	parts = append(parts, quote(artifactPath), "serve", quote(unitDir), "-p", a.portPlaceholder())

	return Process{
		Type:    types.ProcessTypeWeb,
		Command: strings.Join(parts, " "),
		Args:    []string{},
		Default: true,
	}
}

// portPlaceholder renders the launch-time port fallback. The placeholder
// text survives into launch.toml verbatim; only the launching shell
// resolves it.
func (a *Assembler) portPlaceholder() string {
	return fmt.Sprintf("${PORT:-%s}", a.port)
}

// quote returns s in POSIX-shell-safe form. Arguments needing no quoting
// come back unchanged, which keeps ordinary layer paths readable in the
// emitted command. The only unquotable input is a NUL byte, which no
// filesystem path can carry; it passes through unchanged.
func quote(s string) string {
	quoted, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return s
	}
	return quoted
}

// Write persists the launch description to dir/launch.toml, replacing any
// previous content.
func (l Launch) Write(dir string) error {
	data, err := toml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode launch description: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
