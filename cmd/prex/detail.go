package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/prex"
)

// Run executes the detail command.
func (c *DetailCmd) Run(deps *Dependencies) error {
	rec, err := deps.Scraper.ScrapeDetail(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	if !rec.Valid {
		fmt.Fprintf(deps.Stderr, "warning: record is incomplete: %v\n", rec.Issues)
	}

	return nil
}
