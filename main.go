// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "fnbuild/cmd/fnbuild"
)

func main() {
	cmd.Execute()
}
