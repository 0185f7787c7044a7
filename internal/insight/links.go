package insight

import "strings"

// linkTriggers are evaluated independently for every anchor, so one anchor
// may populate several categories. Per category, later anchors overwrite
// earlier ones.
var linkTriggers = []struct {
	match    func(text string) bool
	category string
}{
	{func(t string) bool { return strings.Contains(t, "blog") }, "blogs"},
	{func(t string) bool { return strings.Contains(t, "contact") }, "contact_us"},
	{func(t string) bool { return strings.Contains(t, "track") || strings.Contains(t, "order") }, "order_tracking"},
}

// ExtractImportantLinks categorizes anchors by keywords in their visible
// text: blog pages, contact pages, and order tracking.
func ExtractImportantLinks(anchors []Anchor) map[string]string {
	links := make(map[string]string)
	for _, a := range anchors {
		if a.Text == "" {
			continue
		}
		text := strings.ToLower(a.Text)
		for _, trig := range linkTriggers {
			if trig.match(text) {
				links[trig.category] = a.Href
			}
		}
	}
	return links
}
