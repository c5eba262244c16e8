package summary

// Sampling caps applied to every summary regardless of repository size.
// FileCount keeps counting past MaxSampleFiles; only the sample lists stop.
const (
	MaxSampleFiles       = 100
	MaxSampleDirectories = 50
)

// RepositorySummary aggregates the structure of one repository snapshot.
//
// A summary is built fresh on every fetch or scan, lives only inside the
// owning session, and is replaced wholesale on the next fetch or reset.
type RepositorySummary struct {
	// Remote metadata, populated only when the source is a hosted repository.
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Language      string   `json:"language,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	OpenIssues    int      `json:"open_issues"`
	Topics        []string `json:"topics,omitempty"`
	Owner         string   `json:"owner,omitempty"`
	RepoURL       string   `json:"repo_url,omitempty"`
	DefaultBranch string   `json:"default_branch,omitempty"`

	// Local is true when the summary came from a filesystem scan.
	Local bool `json:"is_local,omitempty"`
	// Branch is the checked-out branch of a local scan, when detectable.
	Branch string `json:"branch,omitempty"`

	// FileCount counts every regular file encountered, including files
	// beyond the SampleFiles cap.
	FileCount int `json:"file_count"`

	// Languages maps lowercase file extensions (with leading dot, e.g.
	// ".py") to occurrence counts. Files without an extension are counted
	// in FileCount but never appear here.
	Languages map[string]int `json:"languages"`

	// SampleFiles holds up to MaxSampleFiles paths in traversal order.
	SampleFiles []string `json:"files"`
	// SampleDirectories holds up to MaxSampleDirectories paths in
	// traversal order.
	SampleDirectories []string `json:"directories"`

	HasDependencyManifest  bool `json:"has_requirements"`
	HasPackageManifest     bool `json:"has_package_json"`
	HasContainerDefinition bool `json:"has_dockerfile"`
	HasTests               bool `json:"has_tests"`

	// ConfigFiles lists filenames that matched a manifest or container
	// rule, in traversal order. Duplicates are possible.
	ConfigFiles []string `json:"config_files"`
}

// New returns an empty summary with the histogram initialized.
func New() *RepositorySummary {
	return &RepositorySummary{
		Languages:   make(map[string]int),
		ConfigFiles: []string{},
	}
}

// HasDependencies reports whether any dependency or package manifest was seen.
func (s *RepositorySummary) HasDependencies() bool {
	return s.HasDependencyManifest || s.HasPackageManifest
}

// RecordDirectory appends a directory path to the sample, respecting the cap.
func (s *RepositorySummary) RecordDirectory(path string) {
	if len(s.SampleDirectories) < MaxSampleDirectories {
		s.SampleDirectories = append(s.SampleDirectories, path)
	}
}
