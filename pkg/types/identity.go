// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Identity describes the subject of one analysis run: a display name plus
// whatever attributes are already known about the person. The zero values
// of the optional fields mean "unknown". An Identity is assembled once per
// run and never mutated afterwards.
type Identity struct {
	// Name is the person's display name. Required.
	Name string `json:"name" yaml:"name"`

	// Affiliation is a company or organization the person is known to
	// belong to (e.g. from a code-hosting profile).
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// Location is a free-form location string ("City, Country").
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Biography is a short self-description, typically a code-hosting bio.
	Biography string `json:"biography,omitempty" yaml:"biography,omitempty"`

	// KnownLinks lists social-profile URLs already discovered for the
	// person (LinkedIn and similar).
	KnownLinks []string `json:"known_links,omitempty" yaml:"known_links,omitempty"`
}
