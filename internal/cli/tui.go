package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/logogds/pkg/bitmap"
	"github.com/matzehuels/logogds/pkg/drc"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	glyphLit   = "█"
	glyphUnlit = "·"

	// windowRadius is the number of pixels shown on each side of a finding.
	windowRadius = 4
)

// =============================================================================
// FindingsModel - Interactive DRC findings browser
// =============================================================================

// FindingsModel is the bubbletea model for browsing DRC findings next to a
// zoomed view of the bitmap around the selected one.
type FindingsModel struct {
	Bitmap   *bitmap.Bitmap
	Findings []drc.Finding
	Cursor   int
	Height   int
	Offset   int
}

// NewFindingsModel creates a new findings browser.
func NewFindingsModel(b *bitmap.Bitmap, report drc.Report) FindingsModel {
	return FindingsModel{
		Bitmap:   b,
		Findings: report.Findings,
		Height:   15,
	}
}

func (m FindingsModel) Init() tea.Cmd {
	return nil
}

func (m FindingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Findings)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n := len(m.Findings); n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-2*windowRadius-10, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m FindingsModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("DRC Findings"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Findings) == 0 {
		b.WriteString(StyleSuccess.Render("No DRC issues"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Findings))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		f := m.Findings[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, string(f.Kind), strconv.Itoa(f.X), strconv.Itoa(f.Y)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Rule", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	f := m.Findings[m.Cursor]
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		t.Render(),
		"   ",
		neighbourhood(m.Bitmap, f, windowRadius),
	))
	b.WriteString("\n\n")
	b.WriteString(StyleValue.Render(f.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Findings))))

	return b.String()
}

// neighbourhood draws the pixels within radius of f, marking the pixels the
// finding refers to. Out-of-bounds positions are blank.
func neighbourhood(b *bitmap.Bitmap, f drc.Finding, radius int) string {
	var sb strings.Builder
	for y := f.Y - radius; y <= f.Y+radius; y++ {
		for x := f.X - radius; x <= f.X+radius; x++ {
			if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
				sb.WriteString(" ")
				continue
			}
			glyph := glyphUnlit
			if b.At(x, y) {
				glyph = glyphLit
			}
			switch {
			case involved(f, x, y):
				sb.WriteString(styleFault.Render(glyph))
			case b.At(x, y):
				sb.WriteString(styleLit.Render(glyph))
			default:
				sb.WriteString(listDimStyle.Render(glyph))
			}
		}
		if y < f.Y+radius {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// involved reports whether pixel (x, y) is part of finding f: the whole 2×2
// window for a diagonal touch, the pixel itself for a lone pixel.
func involved(f drc.Finding, x, y int) bool {
	if f.Kind == drc.KindDiagonal {
		return (x == f.X || x == f.X-1) && (y == f.Y || y == f.Y-1)
	}
	return x == f.X && y == f.Y
}
