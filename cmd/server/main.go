// Command kinship-mcp serves the kinship reasoning engine over the Model
// Context Protocol, on stdio or as an HTTP JSON-RPC endpoint.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
