// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package social fetches public social-profile pages and pulls whatever
// structured fields the markup still exposes. Scraping is best-effort by
// contract: pages render differently per viewer and the selectors rot, so
// every extraction failure yields an empty field, never an error.
package social

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// maxBodyBytes caps how much of a profile page is read.
const maxBodyBytes = 2 << 20

// maxAchievements caps keyword-context extraction per profile.
const maxAchievements = 10

// contextRadius is how many characters around an achievement keyword are
// kept as the achievement snippet.
const contextRadius = 100

// achievementKeywords flag sentences worth keeping as achievements.
var achievementKeywords = []string{
	"award", "honor", "prize", "winner", "recognized",
	"achievement", "fellowship", "scholarship", "patent",
}

// Scraper fetches social-profile detail records.
type Scraper struct {
	Client    *http.Client
	UserAgent string
}

// Fetch downloads one profile page and extracts what it can. A transport
// or HTTP error is returned so the caller can log it; a page that parses
// to nothing yields a zero SocialProfile and no error.
func (s *Scraper) Fetch(ctx context.Context, profileURL string) (types.SocialProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return types.SocialProfile{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return types.SocialProfile{}, fmt.Errorf("profile fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SocialProfile{}, fmt.Errorf("profile fetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return types.SocialProfile{}, fmt.Errorf("reading profile page: %w", err)
	}

	return Parse(string(body), profileURL), nil
}

var (
	titleTagPattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitlePattern  = regexp.MustCompile(`(?i)<meta\s+property="og:title"\s+content="([^"]*)"`)
	ogDescPattern   = regexp.MustCompile(`(?i)<meta\s+property="og:description"\s+content="([^"]*)"`)
	localityPattern = regexp.MustCompile(`"addressLocality"\s*:\s*"([^"]+)"`)
	listItemPattern = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)
	spacePattern    = regexp.MustCompile(`\s+`)
)

// Parse extracts a SocialProfile from raw page HTML. Every field is
// optional; unrecognized markup just leaves fields empty.
func Parse(page, profileURL string) types.SocialProfile {
	p := types.SocialProfile{URL: profileURL}

	title := firstGroup(ogTitlePattern, page)
	if title == "" {
		title = firstGroup(titleTagPattern, page)
	}
	p.Name, p.Headline = splitTitle(html.UnescapeString(title))
	p.Summary = strings.TrimSpace(html.UnescapeString(firstGroup(ogDescPattern, page)))
	p.Location = firstGroup(localityPattern, page)

	for _, item := range sectionItems(page, "experience") {
		p.Experience = append(p.Experience, splitExperience(item))
	}
	for _, item := range sectionItems(page, "education") {
		p.Education = append(p.Education, splitEducation(item))
	}
	p.Skills = sectionItems(page, "skills")
	p.Certifications = sectionItems(page, "certifications")
	p.Projects = sectionItems(page, "projects")
	p.Volunteer = sectionItems(page, "volunteer")

	p.Achievements = achievementSnippets(page)
	return p
}

// sectionItems returns the cleaned list-item texts of one data-section
// block. Pages that dropped or renamed the section yield nil.
func sectionItems(page, section string) []string {
	re := regexp.MustCompile(`(?is)<section[^>]*data-section="` + section + `"[^>]*>(.*?)</section>`)
	block := firstGroup(re, page)
	if block == "" {
		return nil
	}

	var items []string
	for _, m := range listItemPattern.FindAllStringSubmatch(block, -1) {
		text := cleanText(m[1])
		if text != "" {
			items = append(items, text)
		}
	}
	return items
}

// splitExperience breaks a "Title at Company" item into its parts; anything
// else becomes the bare title.
func splitExperience(item string) types.ExperienceEntry {
	if parts := strings.SplitN(item, " at ", 2); len(parts) == 2 {
		return types.ExperienceEntry{
			Title:   strings.TrimSpace(parts[0]),
			Company: strings.TrimSpace(parts[1]),
		}
	}
	return types.ExperienceEntry{Title: item}
}

// splitEducation breaks a "School - Degree" item into its parts.
func splitEducation(item string) types.EducationEntry {
	if parts := strings.SplitN(item, " - ", 2); len(parts) == 2 {
		return types.EducationEntry{
			School: strings.TrimSpace(parts[0]),
			Degree: strings.TrimSpace(parts[1]),
		}
	}
	return types.EducationEntry{School: item}
}

// cleanText strips markup and collapses whitespace.
func cleanText(s string) string {
	s = spacePattern.ReplaceAllString(tagPattern.ReplaceAllString(s, " "), " ")
	return strings.TrimSpace(html.UnescapeString(s))
}

func firstGroup(re *regexp.Regexp, page string) string {
	if m := re.FindStringSubmatch(page); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// splitTitle breaks a "Name - Headline | Site" page title into name and
// headline parts.
func splitTitle(title string) (name, headline string) {
	if idx := strings.LastIndex(title, "|"); idx != -1 {
		title = strings.TrimSpace(title[:idx])
	}
	parts := strings.SplitN(title, " - ", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		headline = strings.TrimSpace(parts[1])
	}
	return name, headline
}

// achievementSnippets returns deduplicated text snippets around
// achievement keywords, capped at maxAchievements.
func achievementSnippets(page string) []string {
	text := cleanText(page)
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var snippets []string
	for _, kw := range achievementKeywords {
		offset := 0
		for {
			idx := strings.Index(lower[offset:], kw)
			if idx == -1 {
				break
			}
			idx += offset
			start := idx - contextRadius
			if start < 0 {
				start = 0
			}
			end := idx + len(kw) + contextRadius
			if end > len(text) {
				end = len(text)
			}
			snippet := strings.TrimSpace(text[start:end])
			key := strings.ToLower(snippet)
			if !seen[key] && len(snippet) > len(kw) {
				seen[key] = true
				snippets = append(snippets, snippet)
				if len(snippets) >= maxAchievements {
					return snippets
				}
			}
			offset = idx + len(kw)
		}
	}
	return snippets
}
