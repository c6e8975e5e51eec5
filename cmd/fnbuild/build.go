// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fnbuild/internal/app/build"
	"fnbuild/internal/buildcfg"
	"fnbuild/internal/cnb"
	"fnbuild/internal/fetch"
	"fnbuild/internal/issue"
	"fnbuild/internal/phase"
)

var buildCmd = &cobra.Command{
	Use:   "build <layers> <platform> <plan>",
	Short: "Run the buildpack build phase",
	Long: `Run the build phase against the application in the current working
directory.

The three positional arguments are supplied by the platform through the
buildpack's bin/build stub: the layers directory, the platform directory,
and the build plan path. The buildpack's own root directory is read from
the CNB_BUILDPACK_DIR environment variable.`,
	Args:         cobra.ExactArgs(3),
	SilenceUsage: true,
	// Cobra would echo the error a second time; the phase logger and
	// renderBuildError already put everything on stderr.
	SilenceErrors: true,
	RunE:          runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	buildCtx, err := cnb.ResolveContext(args)
	if err != nil {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+err.Error())
		return &ExitError{Code: 1, Err: err}
	}

	platformEnv, err := cnb.ReadPlatformEnv(buildCtx.PlatformDir)
	if err != nil {
		// Only BP_DEBUG is read from the platform env, so a broken env dir
		// degrades logging instead of failing the build.
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+err.Error())
		platformEnv = map[string]string{}
	}

	log := phase.NewLogger(cmd.OutOrStdout(), stderr, cnb.DebugEnabled(platformEnv))
	orchestrator := build.New(buildcfg.NewProvider(), fetch.NewFetcher(), log)

	if err := orchestrator.Run(cmd.Context(), buildCtx); err != nil {
		renderBuildError(stderr, err)
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

// renderBuildError completes the error output for a failed build. A
// *phase.Failure has already printed its styled block through the phase
// logger, so only its issue catalog entry is added here; every other error
// reaches the user for the first time and is printed in full.
func renderBuildError(stderr io.Writer, err error) {
	var failure *phase.Failure
	if errors.As(err, &failure) {
		if failure.IssueID == 0 {
			return
		}
		if entry := issue.Get(failure.IssueID); entry != nil {
			if rendered, renderErr := entry.Render("dark"); renderErr == nil {
				fmt.Fprint(stderr, rendered)
			}
		}
		return
	}

	var actionable *issue.ActionableError
	if errors.As(err, &actionable) {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+actionable.Format(false))
		return
	}

	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+err.Error())
}
