package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focusdrive/internal/modules/provider/domain"
	providerout "focusdrive/internal/modules/provider/port/out"
)

const manifestFile = "providers.yaml"

type manifestDocument struct {
	Providers []domain.Manifest `yaml:"providers"`
}

// FileManifestStore reads the providers list from <home>/providers.yaml.
// Relative binary paths resolve against home.
type FileManifestStore struct {
	home string
}

func NewFileManifestStore(home string) providerout.ManifestStore {
	return &FileManifestStore{home: home}
}

func ManifestPath(home string) string {
	return filepath.Join(home, manifestFile)
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	f, err := os.Open(ManifestPath(s.home))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open provider manifests: %w", err)
	}
	defer f.Close()

	var doc manifestDocument
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", manifestFile, err)
	}
	for i, m := range doc.Providers {
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			doc.Providers[i].Binary = filepath.Join(s.home, m.Binary)
		}
	}
	return doc.Providers, nil
}
