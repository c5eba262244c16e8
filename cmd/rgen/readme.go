package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var readmeOpts struct {
	projectName    string
	username       string
	license        string
	context        string
	extraDesc      string
	customSections string
	model          string
	apiKey         string
	githubToken    string
	output         string
}

// readmeCmd runs the full fetch → analyze → generate pipeline.
var readmeCmd = &cobra.Command{
	Use:   "readme <owner/repo|url>",
	Short: "Generate a README for a GitHub repository",
	Long: `Fetch a GitHub repository, analyze it, and generate a README through the
readmegend server.

Examples:
  # Generate and print to stdout
  rgen readme acme/widgets --project-name Widgets

  # Write straight to a file with license and author info
  rgen readme acme/widgets --project-name Widgets --license MIT \
    --username acme -o README.md

  # Pick a specific model and bring your own key
  rgen readme acme/widgets --project-name Widgets \
    --model llama-3.1-8b-instant --api-key $GROQ_API_KEY`,
	Args: cobra.ExactArgs(1),
	RunE: runReadme,
}

func init() {
	f := readmeCmd.Flags()
	f.StringVar(&readmeOpts.projectName, "project-name", "", "project name for the README (default: repository name)")
	f.StringVar(&readmeOpts.username, "username", "", "GitHub username for badge and link generation")
	f.StringVar(&readmeOpts.license, "license", "", "license name to mention (e.g. MIT)")
	f.StringVar(&readmeOpts.context, "context", "", "extra context for the analysis prompt")
	f.StringVar(&readmeOpts.extraDesc, "description", "", "extra project description for the README prompt")
	f.StringVar(&readmeOpts.customSections, "sections", "", "comma-separated custom sections to include")
	f.StringVar(&readmeOpts.model, "model", "", "completion model (default: server default)")
	f.StringVar(&readmeOpts.apiKey, "api-key", "", "LLM API key override")
	f.StringVar(&readmeOpts.githubToken, "github-token", "", "GitHub token for private repos and higher rate limits")
	f.StringVarP(&readmeOpts.output, "output", "o", "", "write the README to this file instead of stdout")
}

func runReadme(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)

	id, err := client.createSession()
	if err != nil {
		return err
	}
	defer client.deleteSession(id)

	var fetched FetchResponse
	err = client.postJSON("/api/v1/sessions/"+id+"/fetch",
		FetchRequest{URL: args[0], GitHubToken: readmeOpts.githubToken}, &fetched)
	if err != nil {
		return err
	}

	projectName := readmeOpts.projectName
	if projectName == "" && fetched.Summary != nil {
		projectName = fetched.Summary.Name
	}
	if projectName == "" {
		return fmt.Errorf("could not determine a project name; pass --project-name")
	}

	fmt.Fprintf(os.Stderr, "[rgen] Analyzing %s...\n", args[0])
	var analyzed AnalyzeResponse
	err = client.postJSON("/api/v1/sessions/"+id+"/analyze", AnalyzeRequest{
		Context: readmeOpts.context,
		Model:   readmeOpts.model,
		APIKey:  readmeOpts.apiKey,
	}, &analyzed)
	if err != nil {
		return err
	}
	if analyzed.Error != "" {
		return fmt.Errorf("analysis failed: %s", analyzed.Error)
	}

	fmt.Fprintf(os.Stderr, "[rgen] Generating README for %s...\n", projectName)
	var generated GenerateResponse
	err = client.postJSON("/api/v1/sessions/"+id+"/generate", GenerateRequest{
		ProjectName:    projectName,
		GitHubUsername: readmeOpts.username,
		License:        readmeOpts.license,
		ExtraDesc:      readmeOpts.extraDesc,
		CustomSections: readmeOpts.customSections,
		Model:          readmeOpts.model,
		APIKey:         readmeOpts.apiKey,
	}, &generated)
	if err != nil {
		return err
	}
	if generated.Error != "" {
		return fmt.Errorf("generation failed: %s", generated.Error)
	}

	readme := generated.Readme
	if !strings.HasSuffix(readme, "\n") {
		readme += "\n"
	}

	if readmeOpts.output != "" {
		if err := os.WriteFile(readmeOpts.output, []byte(readme), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", readmeOpts.output, err)
		}
		fmt.Fprintf(os.Stderr, "[rgen] Wrote %s\n", readmeOpts.output)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), readme)
	return nil
}
