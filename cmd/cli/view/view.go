package view

import (
	"github.com/wscoble/lambda-deployer/pkg/convention/config"
	"github.com/wscoble/lambda-deployer/pkg/convention/deployment"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type row struct {
	label string
	value string
}

// Summary renders what a deploy left behind.
func Summary(d deployment.Deployment, artifactPath string, git config.Git) string {
	title := "Updated " + d.Name
	if d.Created {
		title = "Created " + d.Name
	}

	rows := []row{
		{"arn", aws.ToString(d.Arn)},
		{"version", aws.ToString(d.Version)},
		{"sha256", aws.ToString(d.CodeSha256)},
		{"package", artifactPath},
	}

	if git.Sha != "" {
		revision := git.Branch + "@" + git.Sha
		if git.Dirty {
			revision += " (dirty)"
		}
		rows = append(rows, row{"revision", revision})
	}

	lines := []string{titleStyle.Render(title)}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r.label), r.value))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
