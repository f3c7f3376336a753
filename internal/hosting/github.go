// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hosting finds the best-matching code-hosting account for a name.
// Implements: prd010-person-search (R1, R2);
//
//	docs/ARCHITECTURE § Source Collaborators.
package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

// githubAPIBase is the GitHub REST API root. Declared as a var so tests
// can substitute an httptest server.
var githubAPIBase = "https://api.github.com"

// GitHubClient searches GitHub users. A token raises the rate limit but is
// optional; anonymous requests work for low volumes.
type GitHubClient struct {
	Client    *http.Client
	Token     string
	UserAgent string
}

// FindProfile returns the top user-search hit for name, enriched with the
// user detail record, or (nil, nil) when the search matches nobody.
func (c *GitHubClient) FindProfile(ctx context.Context, name string) (*types.HostingProfile, error) {
	searchURL := fmt.Sprintf("%s/search/users?q=%s&per_page=1", githubAPIBase, url.QueryEscape(name))

	var sr struct {
		Items []struct {
			Login string `json:"login"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, searchURL, &sr); err != nil {
		return nil, fmt.Errorf("user search: %w", err)
	}
	if len(sr.Items) == 0 {
		return nil, nil
	}

	login := sr.Items[0].Login
	var detail struct {
		Login       string `json:"login"`
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		Location    string `json:"location"`
		Company     string `json:"company"`
		Blog        string `json:"blog"`
		HTMLURL     string `json:"html_url"`
		AvatarURL   string `json:"avatar_url"`
		PublicRepos int    `json:"public_repos"`
		Followers   int    `json:"followers"`
	}
	if err := c.getJSON(ctx, githubAPIBase+"/users/"+url.PathEscape(login), &detail); err != nil {
		return nil, fmt.Errorf("user detail for %s: %w", login, err)
	}

	return &types.HostingProfile{
		Username:  detail.Login,
		Name:      detail.Name,
		Bio:       detail.Bio,
		Location:  detail.Location,
		Company:   strings.TrimPrefix(strings.TrimSpace(detail.Company), "@"),
		Blog:      detail.Blog,
		URL:       detail.HTMLURL,
		AvatarURL: detail.AvatarURL,
		Repos:     detail.PublicRepos,
		Followers: detail.Followers,
	}, nil
}

func (c *GitHubClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return fmt.Errorf("code-hosting API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("code-hosting API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing code-hosting response: %w", err)
	}
	return nil
}
