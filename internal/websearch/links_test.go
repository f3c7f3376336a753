// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package websearch

import (
	"fmt"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

func TestExtractSocialLinksCaps(t *testing.T) {
	resp := &types.WebSearchResponse{}
	for i := 0; i < 5; i++ {
		resp.Organic = append(resp.Organic, types.WebResult{
			Link: fmt.Sprintf("https://linkedin.com/in/profile%d", i),
		})
	}
	for i := 0; i < 4; i++ {
		resp.Organic = append(resp.Organic, types.WebResult{
			Link: fmt.Sprintf("https://x.com/user%d", i),
		})
	}

	links := ExtractSocialLinks(resp)
	if len(links.LinkedIn) != 3 {
		t.Errorf("LinkedIn links = %v, cap is 3", links.LinkedIn)
	}
	if links.LinkedIn[0] != "https://linkedin.com/in/profile0" {
		t.Errorf("first LinkedIn link = %q, want first-seen order", links.LinkedIn[0])
	}
	if len(links.Twitter) != 2 {
		t.Errorf("Twitter links = %v, cap is 2", links.Twitter)
	}
}

func TestExtractSocialLinksOtherPlatforms(t *testing.T) {
	resp := &types.WebSearchResponse{
		Organic: []types.WebResult{
			{Link: "https://github.com/janedoe"},
			{Link: "https://github.com/janedoe/project"},
			{Link: "https://www.youtube.com/@janedoe"},
			{Link: "https://example.com/blog"},
		},
	}

	links := ExtractSocialLinks(resp)
	if links.Other["github"] != "https://github.com/janedoe" {
		t.Errorf("github link = %q, want the first one seen", links.Other["github"])
	}
	if links.Other["youtube"] == "" {
		t.Error("youtube link missing")
	}
	if len(links.LinkedIn) != 0 || len(links.Twitter) != 0 {
		t.Errorf("unexpected linkedin/twitter links: %v / %v", links.LinkedIn, links.Twitter)
	}
}

func TestExtractSocialLinksPanelAndDedupe(t *testing.T) {
	resp := &types.WebSearchResponse{
		Organic: []types.WebResult{
			{Link: "https://linkedin.com/in/janedoe"},
			{Link: "https://linkedin.com/in/janedoe"},
		},
		Panel: &types.KnowledgePanel{
			ProfileURLs: []string{"https://twitter.com/janedoe"},
		},
	}

	links := ExtractSocialLinks(resp)
	if len(links.LinkedIn) != 1 {
		t.Errorf("LinkedIn links = %v, want the duplicate dropped", links.LinkedIn)
	}
	if len(links.Twitter) != 1 {
		t.Errorf("Twitter links = %v, want the panel URL", links.Twitter)
	}
}

func TestExtractSocialLinksNil(t *testing.T) {
	links := ExtractSocialLinks(nil)
	if len(links.LinkedIn) != 0 || len(links.Twitter) != 0 || len(links.Other) != 0 {
		t.Errorf("links from nil response = %+v", links)
	}
}
