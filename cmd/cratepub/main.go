// Command cratepub checks and publishes the crates of a Cargo workspace.
package main

import "github.com/mesh-intelligence/cratepub/internal/cli"

func main() {
	cli.Execute()
}
