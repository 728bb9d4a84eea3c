// Command tinyelf assembles typed instruction programs directly into
// minimal ELF64 executables.
package main

import "github.com/nmeum/tinyelf/cmd/tinyelf/cmd"

func main() {
	cmd.Execute()
}
