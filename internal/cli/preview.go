package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/laneflow/pkg/export"
	"github.com/matzehuels/laneflow/pkg/pipeline"
)

// previewCommand creates the preview command: an interactive terminal viewer
// for the text rendering of a diagram.
func (c *CLI) previewCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a diagram as text in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding layout constants")
	return cmd
}

// runPreview renders the text artifact and hands it to the bubbletea viewer.
func (c *CLI) runPreview(ctx context.Context, input, configPath string) error {
	descriptor, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}

	cfg, err := loadLayoutConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}

	runner := newRunner(ctx, true)
	result, err := runner.Execute(ctx, descriptor, pipeline.Options{
		Formats: []string{string(export.FormatText)},
		Layout:  &cfg,
		NoCache: true,
	})
	if err != nil {
		return err
	}

	model := newPreviewModel(input, string(result.Artifacts[string(export.FormatText)]))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// previewModel - Scrollable text diagram viewer
// =============================================================================

var previewDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// previewModel is the bubbletea model for the diagram preview.
type previewModel struct {
	title   string
	lines   []string
	offsetY int
	offsetX int
	width   int
	height  int
}

func newPreviewModel(title, content string) previewModel {
	return previewModel{
		title:  title,
		lines:  strings.Split(strings.TrimRight(content, "\n"), "\n"),
		width:  80,
		height: 24,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offsetY > 0 {
				m.offsetY--
			}
		case "down", "j":
			if m.offsetY < len(m.lines)-m.viewHeight() {
				m.offsetY++
			}
		case "left", "h":
			if m.offsetX > 0 {
				m.offsetX -= 4
				if m.offsetX < 0 {
					m.offsetX = 0
				}
			}
		case "right", "l":
			m.offsetX += 4
		case "pgup":
			m.offsetY -= m.viewHeight()
			if m.offsetY < 0 {
				m.offsetY = 0
			}
		case "pgdown":
			m.offsetY += m.viewHeight()
			if max := len(m.lines) - m.viewHeight(); m.offsetY > max {
				m.offsetY = max
			}
			if m.offsetY < 0 {
				m.offsetY = 0
			}
		case "g", "home":
			m.offsetY = 0
		case "G", "end":
			m.offsetY = len(m.lines) - m.viewHeight()
			if m.offsetY < 0 {
				m.offsetY = 0
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// viewHeight is the number of content rows, leaving room for header and footer.
func (m previewModel) viewHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("↑/↓ scroll  ←/→ pan  g/G top/bottom  q quit"))
	b.WriteString("\n\n")

	end := m.offsetY + m.viewHeight()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for i := m.offsetY; i < end; i++ {
		line := m.lines[i]
		if m.offsetX < len(line) {
			line = line[m.offsetX:]
		} else {
			line = ""
		}
		if m.width > 0 && len(line) > m.width {
			line = line[:m.width]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.offsetY+1, end, len(m.lines))))
	return b.String()
}
