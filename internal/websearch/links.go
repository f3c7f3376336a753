// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"strings"

	"github.com/pdiddy/profile-engine/pkg/types"
)

const (
	maxLinkedInLinks = 3
	maxTwitterLinks  = 2
)

// otherPlatforms maps a URL fragment to the platform label used in
// SocialLinks.Other. Only the first link per platform is kept.
var otherPlatforms = []struct {
	fragment string
	label    string
}{
	{"instagram.com/", "instagram"},
	{"facebook.com/", "facebook"},
	{"youtube.com/", "youtube"},
	{"github.com/", "github"},
}

// ExtractSocialLinks scans organic result links and knowledge-panel URLs
// for social-profile addresses, in input order. LinkedIn links are capped
// at 3 and Twitter links at 2; other recognized platforms keep one link
// each.
func ExtractSocialLinks(resp *types.WebSearchResponse) types.SocialLinks {
	links := types.SocialLinks{}
	if resp == nil {
		return links
	}

	var candidates []string
	for _, o := range resp.Organic {
		candidates = append(candidates, o.Link)
	}
	if resp.Panel != nil {
		candidates = append(candidates, resp.Panel.ProfileURLs...)
	}

	seen := make(map[string]bool)
	for _, link := range candidates {
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		lower := strings.ToLower(link)

		switch {
		case strings.Contains(lower, "linkedin.com/in/"):
			if len(links.LinkedIn) < maxLinkedInLinks {
				links.LinkedIn = append(links.LinkedIn, link)
			}
		case strings.Contains(lower, "twitter.com/") || strings.Contains(lower, "x.com/"):
			if len(links.Twitter) < maxTwitterLinks {
				links.Twitter = append(links.Twitter, link)
			}
		default:
			for _, p := range otherPlatforms {
				if !strings.Contains(lower, p.fragment) {
					continue
				}
				if links.Other == nil {
					links.Other = make(map[string]string)
				}
				if _, ok := links.Other[p.label]; !ok {
					links.Other[p.label] = link
				}
				break
			}
		}
	}
	return links
}
