package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

var summarizeGitHubToken string

// summarizeCmd fetches and prints a remote repository summary
var summarizeCmd = &cobra.Command{
	Use:   "summarize <owner/repo|url>",
	Short: "Summarize a GitHub repository via the server",
	Long: `Fetch a GitHub repository's structure through the readmegend server and
print a summary table.

Examples:
  # Summarize by short reference
  rgen summarize golang/go

  # Summarize by URL, with a token for private repos or higher rate limits
  rgen summarize https://github.com/acme/widgets --github-token $GITHUB_TOKEN`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

// modelsCmd lists selectable completion models
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List completion models the server accepts",
	RunE:  runModels,
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeGitHubToken, "github-token", "", "GitHub token for private repos and higher rate limits")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)

	id, err := client.createSession()
	if err != nil {
		return err
	}
	defer client.deleteSession(id)

	var resp FetchResponse
	err = client.postJSON("/api/v1/sessions/"+id+"/fetch",
		FetchRequest{URL: args[0], GitHubToken: summarizeGitHubToken}, &resp)
	if err != nil {
		return err
	}

	renderSummary(cmd, resp.Summary)
	return nil
}

func runModels(cmd *cobra.Command, args []string) error {
	client := newAPIClient(serverURL)

	var resp ModelsResponse
	if err := client.getJSON("/api/v1/models", &resp); err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Model", "Default"})
	for _, m := range resp.Models {
		def := ""
		if m == resp.Default {
			def = "*"
		}
		table.Append([]string{m, def})
	}
	table.Render()
	return nil
}

// renderSummary prints a repository summary as tables.
func renderSummary(cmd *cobra.Command, s *summary.RepositorySummary) {
	if s == nil {
		return
	}

	out := cmd.OutOrStdout()

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	if s.Local {
		table.Append([]string{"Source", "local directory"})
		if s.Branch != "" {
			table.Append([]string{"Branch", s.Branch})
		}
	} else {
		table.Append([]string{"Repository", s.Owner + "/" + s.Name})
		table.Append([]string{"Description", s.Description})
		table.Append([]string{"Language", s.Language})
		table.Append([]string{"Stars", strconv.Itoa(s.Stars)})
		table.Append([]string{"Forks", strconv.Itoa(s.Forks)})
		table.Append([]string{"Open Issues", strconv.Itoa(s.OpenIssues)})
		if len(s.Topics) > 0 {
			table.Append([]string{"Topics", strings.Join(s.Topics, ", ")})
		}
	}
	table.Append([]string{"Files", strconv.Itoa(s.FileCount)})
	table.Append([]string{"Dependency manifest", yesNo(s.HasDependencyManifest)})
	table.Append([]string{"Package manifest", yesNo(s.HasPackageManifest)})
	table.Append([]string{"Container definition", yesNo(s.HasContainerDefinition)})
	table.Append([]string{"Tests", yesNo(s.HasTests)})
	table.Render()

	if len(s.Languages) > 0 {
		fmt.Fprintln(out)
		langs := tablewriter.NewWriter(out)
		langs.SetHeader([]string{"Extension", "Files"})
		for _, ext := range sortedKeys(s.Languages) {
			langs.Append([]string{ext, strconv.Itoa(s.Languages[ext])})
		}
		langs.Render()
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
