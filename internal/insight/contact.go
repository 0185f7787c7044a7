package insight

import (
	"regexp"
	"sort"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	// Indian mobile numbers: optional +91 prefix, leading digit 6-9, ten
	// digits total. A documented region-specific heuristic.
	phoneRe = regexp.MustCompile(`(?:\+91[-\s]?)?[6-9]\d{9}\b`)
)

// ExtractContact runs the email and phone patterns over the raw homepage
// markup so addresses embedded in scripts or attributes are still found.
// Matches are deduplicated and sorted so output is deterministic.
func ExtractContact(rawHTML []byte) ContactInfo {
	return ContactInfo{
		Emails: dedupeSorted(emailRe.FindAllString(string(rawHTML), -1)),
		Phones: dedupeSorted(phoneRe.FindAllString(string(rawHTML), -1)),
	}
}

func dedupeSorted(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
