/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command storectl inspects and edits an object store from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/suparena/objectstore/errors"
)

func main() {
	if err := (&app{}).execute(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "** %v **\n", err)
		if errors.IsUserError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
