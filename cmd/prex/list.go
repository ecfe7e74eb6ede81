package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/crawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := prex.ProductFilter{
		Brand:      c.Brand,
		MinQuality: c.MinQuality,
		Limit:      c.Limit,
		Offset:     c.Offset,
	}
	if c.Availability != nil {
		switch av := prex.Availability(*c.Availability); av {
		case prex.InStock, prex.OutOfStock, prex.AvailabilityUnknown:
			filter.Availability = &av
		default:
			fmt.Fprintf(deps.Stderr, "error: unknown availability %q\n", *c.Availability)
			return prex.Errorf(prex.EINVALID, "unknown availability %q", *c.Availability)
		}
	}

	recs, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", prex.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'prex scrape' to collect some.")
		return nil
	}

	if c.Full {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%.2f  %-12s  %-40s  %s\n",
			r.Product.QualityScore,
			crawl.FormatPrice(r.Product.Price, r.Product.Currency),
			truncateName(r.Product.Name, 40),
			r.Product.URL)
	}

	return nil
}
