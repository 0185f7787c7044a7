package insight

import "encoding/json"

// ProductSummary is the minimal projection of one catalog entry from the
// store's machine-readable product feed.
type ProductSummary struct {
	Title *string `json:"title"`
}

// ContactInfo groups the contact details scraped from the raw homepage HTML.
// Both collections are deduplicated and sorted so repeated runs against an
// unchanged store produce identical records.
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// AboutInfo describes the store's "about" page. URL and Preview fail
// independently: a discovered link whose page cannot be fetched keeps the
// URL and leaves Preview nil.
type AboutInfo struct {
	URL     *string `json:"url"`
	Preview *string `json:"preview"`
}

// InsightRecord is the unit of output and persistence for one store.
// Every field is independently defaultable; a failed facet leaves its own
// field empty without affecting the others. The JSON field names are a
// stable contract with downstream consumers.
type InsightRecord struct {
	StoreURL       string            `json:"store_url"`
	PageTitle      *string           `json:"page_title"`
	ProductsCount  int               `json:"products_count"`
	SampleProducts []*string         `json:"sample_products"`
	Policies       map[string]string `json:"policies"`
	FAQs           map[string]bool   `json:"faqs"`
	Socials        map[string]string `json:"socials"`
	Contact        ContactInfo       `json:"contact"`
	About          AboutInfo         `json:"about"`
	ImportantLinks map[string]string `json:"important_links"`
}

// CompetitorResult is one slot in a batch result: exactly one of Record or
// Error is set. Error slots keep the URL that failed so callers can
// correlate back to their input.
type CompetitorResult struct {
	Record        *InsightRecord `json:"record,omitempty"`
	CompetitorURL string         `json:"competitor_url,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// MarshalJSON renders a success slot as the insight record itself and a
// failure slot as {"competitor_url": ..., "error": ...}, keeping the wire
// shape consumers already depend on.
func (r CompetitorResult) MarshalJSON() ([]byte, error) {
	if r.Record != nil {
		return json.Marshal(r.Record)
	}
	return json.Marshal(struct {
		CompetitorURL string `json:"competitor_url"`
		Error         string `json:"error"`
	}{CompetitorURL: r.CompetitorURL, Error: r.Error})
}

// CompetitorBatchResult holds the outcome of analyzing a brand's
// competitors. Competitors preserves the input order and always has one
// entry per requested URL.
type CompetitorBatchResult struct {
	BrandURL    string             `json:"brand_url"`
	Competitors []CompetitorResult `json:"competitors"`
}
