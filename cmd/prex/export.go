package main

import (
	"fmt"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	recs, err := deps.Products.FindProducts(deps.Ctx, prex.ProductFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No products to export.")
		return nil
	}

	store := fs.NewExportStore(c.Dir, c.Name)
	for _, rec := range recs {
		if err := store.Save(deps.Ctx, rec); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d products to %s/%s\n", len(recs), c.Dir, c.Name)
	return nil
}
