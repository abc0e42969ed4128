package main

import (
	"fmt"
	"os"

	"github.com/moltbook/decomposer/internal/cmd"
	"github.com/moltbook/decomposer/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		// Expected conditions (bad input, provider failure) exit 1;
		// anything else exits 2 so scripts can tell them apart.
		if errors.IsUserFacing(err) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}
