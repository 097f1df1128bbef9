//go:build !raylib

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The planet viewer requires the raylib build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags raylib ./cmd/planetview` or build with `-tags raylib`.")
	os.Exit(2)
}
