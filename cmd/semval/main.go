// Command semval parses, validates and renders typed property values.
package main

import "github.com/mesh-intelligence/semval/internal/cli"

func main() {
	cli.Execute()
}
