// Package summary folds flat file listings into aggregate repository
// summaries: extension histograms, marker-file flags, and truncated sample
// lists. It is a pure transformation shared by the remote tree fetcher and
// the local directory scanner.
package summary

import (
	"path"
	"strings"
)

// dependencyManifests are exact filenames indicating a dependency manifest.
var dependencyManifests = map[string]bool{
	"requirements.txt":     true,
	"requirements-dev.txt": true,
	"pyproject.toml":       true,
	"setup.py":             true,
}

// packageManifests are exact filenames indicating a JS package manifest.
var packageManifests = map[string]bool{
	"package.json":      true,
	"package-lock.json": true,
	"yarn.lock":         true,
}

// containerDefinitions are exact filenames indicating a container build.
var containerDefinitions = map[string]bool{
	"dockerfile":          true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
}

// Record folds one file path into the summary: increments FileCount,
// updates the extension histogram, classifies the filename, and appends to
// SampleFiles while under the cap.
//
// Classification is an ordered if/else chain and the first match wins: a
// filename matching a manifest or container rule never also sets HasTests,
// even when it contains "test" (e.g. "requirements-test.txt"). That
// exclusivity is long-standing observed behavior and is kept deliberately.
func (s *RepositorySummary) Record(filePath string) {
	s.FileCount++

	// path.Ext returns "." for a trailing dot; such names have no real
	// extension and stay out of the histogram.
	if ext := strings.ToLower(path.Ext(filePath)); ext != "" && ext != "." {
		s.Languages[ext]++
	}

	name := path.Base(filePath)
	lower := strings.ToLower(name)
	switch {
	case dependencyManifests[lower]:
		s.HasDependencyManifest = true
		s.ConfigFiles = append(s.ConfigFiles, name)
	case packageManifests[lower]:
		s.HasPackageManifest = true
		s.ConfigFiles = append(s.ConfigFiles, name)
	case containerDefinitions[lower]:
		s.HasContainerDefinition = true
		s.ConfigFiles = append(s.ConfigFiles, name)
	case strings.Contains(lower, "test") || strings.HasPrefix(name, "test_"):
		s.HasTests = true
	}

	if len(s.SampleFiles) < MaxSampleFiles {
		s.SampleFiles = append(s.SampleFiles, filePath)
	}
}
