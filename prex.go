// Package prex extracts structured product records from e-commerce HTML.
// It combines structured-data parsing (JSON-LD product graphs), heuristic
// DOM inspection, and confidence-scored signal predictors, reconciling
// disagreements between sources into one record per product.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package prex
