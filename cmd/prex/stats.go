package main

import (
	"fmt"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats := deps.Pipeline.Stats()
	fmt.Fprintf(deps.Stdout, "Pipeline:\n")
	fmt.Fprintf(deps.Stdout, "  policy             %s\n", stats.Policy)
	fmt.Fprintf(deps.Stdout, "  predictors active  %d\n", stats.PredictorsActive)
	fmt.Fprintf(deps.Stdout, "  quality threshold  %.2f\n", stats.QualityThreshold)

	var total, valid, inStock int
	if err := deps.DB.QueryRowContext(deps.Ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return err
	}
	if err := deps.DB.QueryRowContext(deps.Ctx, "SELECT COUNT(*) FROM products WHERE valid = 1").Scan(&valid); err != nil {
		return err
	}
	if err := deps.DB.QueryRowContext(deps.Ctx, "SELECT COUNT(*) FROM products WHERE availability = 'InStock'").Scan(&inStock); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Database:\n")
	fmt.Fprintf(deps.Stdout, "  products  %d\n", total)
	fmt.Fprintf(deps.Stdout, "  valid     %d\n", valid)
	fmt.Fprintf(deps.Stdout, "  in stock  %d\n", inStock)

	return nil
}
