// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hosting

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindProfile(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/search/users":
			if got := r.URL.Query().Get("q"); got != "Jane Doe" {
				t.Errorf("search query = %q", got)
			}
			fmt.Fprint(w, `{"items": [{"login": "janedoe"}]}`)
		case "/users/janedoe":
			fmt.Fprint(w, `{
				"login": "janedoe",
				"name": "Jane Doe",
				"bio": "systems engineer",
				"location": "Oslo, Norway",
				"company": "@acme ",
				"blog": "https://janedoe.dev",
				"html_url": "https://github.example/janedoe",
				"avatar_url": "https://github.example/janedoe.png",
				"public_repos": 42,
				"followers": 1200
			}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	orig := githubAPIBase
	githubAPIBase = server.URL
	defer func() { githubAPIBase = orig }()

	client := &GitHubClient{Client: server.Client(), Token: "tok123", UserAgent: "test"}
	profile, err := client.FindProfile(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("FindProfile: %v", err)
	}
	if profile == nil {
		t.Fatal("profile is nil")
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if profile.Username != "janedoe" || profile.Name != "Jane Doe" {
		t.Errorf("identity fields = %q / %q", profile.Username, profile.Name)
	}
	if profile.Company != "acme" {
		t.Errorf("Company = %q, want the @-prefix and spaces stripped", profile.Company)
	}
	if profile.Repos != 42 || profile.Followers != 1200 {
		t.Errorf("metrics = %d repos, %d followers", profile.Repos, profile.Followers)
	}
}

func TestFindProfileNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	orig := githubAPIBase
	githubAPIBase = server.URL
	defer func() { githubAPIBase = orig }()

	client := &GitHubClient{Client: server.Client()}
	profile, err := client.FindProfile(context.Background(), "Nobody Atall")
	if err != nil {
		t.Fatalf("FindProfile: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil for an empty search", profile)
	}
}

func TestFindProfileServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	orig := githubAPIBase
	githubAPIBase = server.URL
	defer func() { githubAPIBase = orig }()

	client := &GitHubClient{Client: server.Client()}
	if _, err := client.FindProfile(context.Background(), "Jane Doe"); err == nil {
		t.Error("FindProfile succeeded against a 500 response")
	}
}
