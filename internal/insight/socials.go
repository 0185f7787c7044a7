package insight

import "strings"

// socialPlatforms is evaluated in order; the first domain an anchor's href
// matches claims that anchor, so one href fills at most one platform slot.
var socialPlatforms = []struct {
	domain   string
	platform string
}{
	{"instagram.com", "instagram"},
	{"facebook.com", "facebook"},
	{"youtube.com", "youtube"},
	{"tiktok.com", "tiktok"},
}

// ExtractSocials scans anchors in document order and maps known social
// platform domains to the anchor's href. When several anchors reference
// the same platform, the one appearing later in the document wins.
func ExtractSocials(anchors []Anchor) map[string]string {
	socials := make(map[string]string)
	for _, a := range anchors {
		for _, p := range socialPlatforms {
			if strings.Contains(a.Href, p.domain) {
				socials[p.platform] = a.Href
				break
			}
		}
	}
	return socials
}
