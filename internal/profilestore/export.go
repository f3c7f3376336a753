// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profilestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportFile = "export.yaml"

// Export marshals every indexed profile summary to YAML and writes it to
// profilesDir/export.yaml, giving a human-diffable snapshot of the index.
func (s *Store) Export(ctx context.Context) error {
	summaries, err := s.List(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(struct {
		Profiles []Summary `yaml:"profiles"`
	}{Profiles: summaries})
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}

	path := filepath.Join(s.profilesDir, exportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
