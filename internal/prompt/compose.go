// Package prompt renders repository summaries and user context into the
// natural-language prompts sent to the completion endpoint.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SystemInstruction is sent as the system message on every completion call.
const SystemInstruction = "You are an expert technical writer specializing in software documentation " +
	"and README files. Create professional, comprehensive, and visually appealing documentation."

// maxPromptFiles caps how many sample file paths are embedded in a prompt.
const maxPromptFiles = 30

// SummaryView is the subset of a repository summary the composer needs.
// Declared here so the package stays a pure string transformation.
type SummaryView struct {
	Name        string
	Description string
	Language    string
	Stars       int
	Forks       int
	OpenIssues  int
	Topics      []string
	RepoURL     string

	FileCount       int
	Languages       map[string]int
	SampleFiles     []string
	HasDependencies bool
	HasContainer    bool
	HasTests        bool
	ConfigFiles     []string

	Remote bool
}

// ManualInput is freeform project information typed by the user.
type ManualInput struct {
	Description string `json:"description"`
	TechStack   string `json:"tech_stack"`
	Features    string `json:"features"`
}

// ReadmeRequest carries everything the README prompt needs.
type ReadmeRequest struct {
	ProjectName    string
	License        string
	GitHubUsername string
	AnalysisText   string
	UserDesc       string
	CustomSections string

	// Remote repository info, nil for local/manual projects.
	Repo *SummaryView
}

// Analysis renders the project-analysis prompt for a summarized repository.
func Analysis(s SummaryView, extraContext string) string {
	var b strings.Builder

	if s.Remote {
		name := s.Name
		if name == "" {
			name = "Unknown"
		}
		desc := s.Description
		if desc == "" {
			desc = "No description"
		}
		lang := s.Language
		if lang == "" {
			lang = "Unknown"
		}
		fmt.Fprintf(&b, "You are an expert software documentation writer. Analyze this GitHub repository:\n\n")
		fmt.Fprintf(&b, "Repository: %s\n", name)
		fmt.Fprintf(&b, "Description: %s\n", desc)
		fmt.Fprintf(&b, "Primary Language: %s\n", lang)
		fmt.Fprintf(&b, "Stars: %d | Forks: %d | Issues: %d\n", s.Stars, s.Forks, s.OpenIssues)
		fmt.Fprintf(&b, "Topics: %s\n\n", strings.Join(s.Topics, ", "))
	} else {
		fmt.Fprintf(&b, "You are an expert software documentation writer. Analyze this local project:\n\n")
	}

	writeStats(&b, s)

	if s.Remote {
		b.WriteString("\nRepository Structure (sample):\n")
	} else {
		b.WriteString("\nProject Structure (sample):\n")
	}
	files := s.SampleFiles
	if len(files) > maxPromptFiles {
		files = files[:maxPromptFiles]
	}
	b.WriteString(strings.Join(files, "\n"))
	b.WriteString("\n")

	b.WriteString(analysisInstructions)

	if extraContext != "" {
		fmt.Fprintf(&b, "\n\nAdditional Context: %s", extraContext)
	}

	return b.String()
}

// Manual renders the analysis prompt for freeform user input.
func Manual(m ManualInput, extraContext string) string {
	var b strings.Builder
	b.WriteString("Analyze this project:\n\n")
	fmt.Fprintf(&b, "Description: %s\n", m.Description)
	fmt.Fprintf(&b, "Technologies: %s\n", m.TechStack)
	fmt.Fprintf(&b, "Features: %s\n", m.Features)
	if extraContext != "" {
		fmt.Fprintf(&b, "Context: %s\n", extraContext)
	}
	b.WriteString("\nProvide comprehensive analysis with insights.")
	return b.String()
}

// Readme renders the README-generation prompt.
func Readme(req ReadmeRequest) string {
	var b strings.Builder

	b.WriteString("Generate a professional, comprehensive README.md file for this GitHub repository.\n\n")
	fmt.Fprintf(&b, "Project Name: %s\n", req.ProjectName)
	fmt.Fprintf(&b, "License: %s\n", req.License)
	if req.GitHubUsername != "" {
		fmt.Fprintf(&b, "GitHub Username: %s\n", req.GitHubUsername)
	}

	if req.Repo != nil {
		b.WriteString("\nGitHub Repository Info:\n")
		fmt.Fprintf(&b, "- Stars: %d\n", req.Repo.Stars)
		fmt.Fprintf(&b, "- Forks: %d\n", req.Repo.Forks)
		fmt.Fprintf(&b, "- Issues: %d\n", req.Repo.OpenIssues)
		fmt.Fprintf(&b, "- Topics: %s\n", strings.Join(req.Repo.Topics, ", "))
		fmt.Fprintf(&b, "- Repository URL: %s\n", req.Repo.RepoURL)
	}

	fmt.Fprintf(&b, "\nProject Analysis:\n%s\n", req.AnalysisText)

	if req.UserDesc != "" {
		fmt.Fprintf(&b, "\nUser Description: %s\n", req.UserDesc)
	}
	if req.CustomSections != "" {
		fmt.Fprintf(&b, "\nAdditional Sections: %s\n", req.CustomSections)
	}

	b.WriteString(readmeInstructions)

	return b.String()
}

// writeStats writes the shared statistics block.
func writeStats(b *strings.Builder, s SummaryView) {
	histogram, err := json.MarshalIndent(s.Languages, "", "  ")
	if err != nil {
		histogram = []byte("{}")
	}

	b.WriteString("Project Statistics:\n")
	fmt.Fprintf(b, "- Total Files: %d\n", s.FileCount)
	fmt.Fprintf(b, "- File Types: %s\n", histogram)
	fmt.Fprintf(b, "- Has Dependencies: %t\n", s.HasDependencies)
	fmt.Fprintf(b, "- Has Docker: %t\n", s.HasContainer)
	fmt.Fprintf(b, "- Has Tests: %t\n", s.HasTests)
	fmt.Fprintf(b, "- Config Files: %s\n", strings.Join(s.ConfigFiles, ", "))
}

const analysisInstructions = `
Based on this information, provide a detailed analysis including:
1. Project type and purpose
2. Technology stack and frameworks
3. Architecture and structure
4. Key features and capabilities
5. Installation requirements
6. Usage patterns
7. Notable patterns or best practices

Format as a structured, detailed analysis.`

const readmeInstructions = `
Create a README.md that includes:
1. Project title with badges (shields.io format for stars, forks, license, language)
2. Compelling description with key features
3. Table of Contents
4. Features section (detailed)
5. Demo/Screenshots section (placeholder)
6. Prerequisites
7. Installation (step-by-step with code blocks)
8. Usage (with examples and code snippets)
9. API Documentation (if applicable)
10. Configuration options
11. Project structure
12. Testing instructions
13. Deployment guide (if applicable)
14. Contributing guidelines
15. License
16. Authors/Contributors
17. Acknowledgments
18. Support/Contact

Use emojis, proper markdown formatting, code blocks with syntax highlighting.
Make it visually appealing and comprehensive.
Include actual badge URLs using shields.io.

Return ONLY the README markdown content.`
