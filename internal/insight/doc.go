// Package insight implements the storefront extraction pipeline: fetching a
// store's product feed and homepage, running the per-facet extractors, and
// assembling the results into a single InsightRecord.
package insight
