// Package project locates the project root and reads its declared version.
package project

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	perferrors "perfledger/internal/errors"

	"gopkg.in/yaml.v3"
)

// DefaultManifests are searched, in order, in each candidate directory.
var DefaultManifests = []string{"package.json", "VERSION", "perfledger.yaml"}

// FindRoot returns the nearest directory at or above start that contains
// one of manifests as a regular file.
func FindRoot(start string, manifests []string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}
	for {
		if _, ok := findManifest(dir, manifests); ok {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &perferrors.ProjectNotFoundError{Start: start, Manifests: manifests}
		}
		dir = parent
	}
}

func findManifest(dir string, manifests []string) (string, bool) {
	for _, name := range manifests {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// ReadVersion reads the version declared by the first manifest found in root.
func ReadVersion(root string, manifests []string) (string, error) {
	path, ok := findManifest(root, manifests)
	if !ok {
		return "", &perferrors.ProjectNotFoundError{Start: root, Manifests: manifests}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest: %w", err)
	}

	var version string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		var m struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(data, &m); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
		version = m.Version
	case ".yaml", ".yml":
		var m struct {
			Version string `yaml:"version"`
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", path, err)
		}
		version = m.Version
	default:
		version = firstLine(data)
	}

	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("manifest %s does not declare a version", path)
	}
	return version, nil
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}
	return ""
}
