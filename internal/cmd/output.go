package cmd

import (
	"fmt"
	"io"

	"dndbridge/internal/config"
	"dndbridge/internal/dragdrop"
	"dndbridge/internal/trace"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F4FB7"))
	signalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#81A1C1"))
	eventStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	replyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#959595"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
)

func printResults(w io.Writer, t *trace.Trace, shape string, results []trace.Result) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%s, %d signals)", t.Name, shape, len(results))))
	events := 0
	for _, res := range results {
		line := signalStyle.Render(fmt.Sprintf("%3d %s", res.Index, trace.Describe(res.Signal)))
		switch res.Signal.(type) {
		case dragdrop.DragDrop:
			line += " " + replyStyle.Render("-> "+res.Reply.Decision.String())
		case dragdrop.DragFailed:
			line += " " + replyStyle.Render("-> "+res.Reply.Propagation.String())
		}
		fmt.Fprintln(w, line)
		for _, ev := range res.Events {
			fmt.Fprintln(w, "      "+eventStyle.Render(ev.String()))
			events++
		}
	}
	fmt.Fprintf(w, "%d events\n", events)
}

func configYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
