package insight

import "strings"

// faqFlags maps a literal phrase to the flag it raises when the phrase
// appears anywhere in the page text.
var faqFlags = []struct {
	phrase string
	flag   string
}{
	{"cash on delivery", "cod_available"},
	{"return", "returns_supported"},
}

// ExtractFAQs tests the lower-cased page text for fixed phrases. This is
// pure substring presence with no negation handling; "no returns accepted"
// still raises returns_supported. That is the documented behavior of the
// heuristic, not a defect.
func ExtractFAQs(lowerText string) map[string]bool {
	faqs := make(map[string]bool, len(faqFlags))
	for _, f := range faqFlags {
		faqs[f.flag] = strings.Contains(lowerText, f.phrase)
	}
	return faqs
}
