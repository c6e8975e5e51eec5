// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "fnbuild",
		Short: "Cloud Native Buildpack for JVM functions",
		Long: TitleStyle.Render("fnbuild") + SubtitleStyle.Render(" - Cloud Native Buildpack for JVM functions") + `

fnbuild implements the build phase of a Cloud Native Buildpack that turns
a JVM function project into a runnable web process: it provisions the Java
function runtime into a cached layer, runs function detection against the
application source, and writes the launch description the platform uses to
start the container.

The platform invokes it through the buildpack's bin/build entry point:

  bin/build <layers> <platform> <plan>

Verbose diagnostics are enabled by setting BP_DEBUG to any non-empty value,
either in the build environment or as a platform env file.`,
	}
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
