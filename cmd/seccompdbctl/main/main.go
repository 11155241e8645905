// SPDX-Licence-Identifier: MIT

package main

import "github.com/lmarten/seccompdb/cmd/seccompdbctl"

func main() {
	cmd.Execute()
}
