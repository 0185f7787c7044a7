package insight

// ExtractPolicies derives the conventional Shopify policy page URLs from
// the store's base URL. These are guesses built purely from convention;
// they are never fetched or verified to resolve.
func ExtractPolicies(storeURL string) map[string]string {
	return map[string]string{
		"privacy_policy": storeURL + "/policies/privacy-policy",
		"refund_policy":  storeURL + "/policies/refund-policy",
	}
}
