package main

import (
	"fmt"

	"github.com/fwojciec/prex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return prex.Errorf(prex.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Products.DeleteProduct(deps.Ctx, c.URL); err != nil {
		if prex.ErrorCode(err) == prex.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: product %q not found. Use 'prex list' to see stored products.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.URL)
	return nil
}
