package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logogds/pkg/layer"
)

func (c *CLI) layersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layers",
		Short: "Print the effective layer configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			// Layer tables are the command's output, so they ignore --quiet.
			fmt.Fprintln(c.Stdout, layerTable(effectiveLayers(opts)))
			return nil
		},
	}
}

func layerTable(cfg layer.Config) string {
	var rows [][]string
	add := func(role string, layers []layer.Layer) {
		for _, l := range layers {
			rows = append(rows, []string{role, strconv.Itoa(l.Number), strconv.Itoa(l.Datatype), l.Name})
		}
	}
	add("boundary", cfg.Boundary)
	add("pixel", cfg.Pixel)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Role", "Layer", "Datatype", "Name").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		String()
}
