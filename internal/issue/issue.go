// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	RuntimeConfigMissingId Id = iota + 1
	RuntimeDownloadFailedId
	RuntimeChecksumMismatchId
	NoFunctionsFoundId
	MultipleFunctionsFoundId
	DetectorInternalErrorId
	DetectorUnexpectedExitId
	FunctionManifestInvalidId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	runtimeConfigMissingIssue = &Issue{
		id: RuntimeConfigMissingId,
		mdMsg: `
# Runtime descriptor missing!

The buildpack descriptor does not declare where the Java function runtime
should be fetched from, so the build cannot continue.

## Required keys in buildpack.toml:
~~~toml
[metadata.runtime]
url = "https://example.com/sf-fx-runtime-java/runtime.jar"
sha256 = "<hex digest of the published jar>"
~~~

## Things you can try:
- Check that the [metadata.runtime] table is present and spelled correctly
- Verify both the url and sha256 keys are non-empty strings
- Re-package the buildpack; a partial packaging step can strip metadata`,
	}

	runtimeDownloadFailedIssue = &Issue{
		id: RuntimeDownloadFailedId,
		mdMsg: `
# Download of function runtime failed!

We couldn't download the function runtime.

This is usually caused by intermittent network issues.

## Things you can try:
- Run the build again; transient network errors often clear on retry
- Check that the build environment has outbound network access
- Verify the runtime URL in buildpack.toml is reachable:
~~~
$ curl -I <metadata.runtime.url>
~~~
- Contact us should the error persist`,
	}

	runtimeChecksumMismatchIssue = &Issue{
		id: RuntimeChecksumMismatchId,
		mdMsg: `
# Function runtime integrity check failed!

We could not verify the integrity of the downloaded function runtime.
Its SHA-256 digest does not match the one declared in buildpack.toml.

## Things you can try:
- Run the build again; a truncated download also produces a digest mismatch
- Compare the declared digest against the published artifact:
~~~
$ sha256sum runtime.jar
~~~
- Contact us should the error persist`,
	}

	noFunctionsFoundIssue = &Issue{
		id: NoFunctionsFoundId,
		mdMsg: `
# No functions found!

Your project does not seem to contain any Java functions.
The detector output above might contain information about issues with your function.

## Things you can try:
- Check that your project declares exactly one function class
- Make sure the function class ends up on the compiled classpath
- Review the detector output above for compilation problems`,
	}

	multipleFunctionsFoundIssue = &Issue{
		id: MultipleFunctionsFoundId,
		mdMsg: `
# Multiple functions found!

Your project contains multiple Java functions.
Currently, only projects that contain exactly one (1) function are supported.

## Things you can try:
- Split the extra functions into separate projects
- Remove unused function classes from the build output`,
	}

	detectorInternalErrorIssue = &Issue{
		id: DetectorInternalErrorId,
		mdMsg: `
# Detection failed!

Function detection failed with an internal error. This points at a problem
inside the function runtime's bundler rather than at your project.

## Things you can try:
- Run the build again with BP_DEBUG=true for more detail
- Report the internal error code shown above when contacting support`,
	}

	detectorUnexpectedExitIssue = &Issue{
		id: DetectorUnexpectedExitId,
		mdMsg: `
# Detection failed unexpectedly!

Function detection failed with an exit status outside the documented range.
The detector output above might contain hints what caused this error to happen.

## Things you can try:
- Review the detector output above
- Run the build again with BP_DEBUG=true for more detail
- Report the raw exit status when contacting support`,
	}

	functionManifestInvalidIssue = &Issue{
		id: FunctionManifestInvalidId,
		mdMsg: `
# Function manifest invalid!

The detector reported success but did not leave a readable function-bundle.toml
behind in the detection layer.

## Expected manifest shape:
~~~toml
[function]
class = "com.example.ExampleFunction"
payload_class = "com.example.Payload"
payload_media_type = "application/json"
return_class = "com.example.Result"
return_media_type = "application/json"
~~~

## Things you can try:
- Run the build again with BP_DEBUG=true for more detail
- Check that the buildpack and the pinned function runtime versions match`,
	}

	issues = map[Id]*Issue{
		runtimeConfigMissingIssue.Id():    runtimeConfigMissingIssue,
		runtimeDownloadFailedIssue.Id():   runtimeDownloadFailedIssue,
		runtimeChecksumMismatchIssue.Id(): runtimeChecksumMismatchIssue,
		noFunctionsFoundIssue.Id():        noFunctionsFoundIssue,
		multipleFunctionsFoundIssue.Id():  multipleFunctionsFoundIssue,
		detectorInternalErrorIssue.Id():   detectorInternalErrorIssue,
		detectorUnexpectedExitIssue.Id():  detectorUnexpectedExitIssue,
		functionManifestInvalidIssue.Id(): functionManifestInvalidIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
