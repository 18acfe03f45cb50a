package cli

import (
	"fmt"
	"strings"

	"sales-briefing/internal/display"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		format      string
		interactive bool
		plain       bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a stored briefing (file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if strings.TrimSpace(string(raw)) == "" {
				return fmt.Errorf("no briefing given")
			}
			b, err := generatebriefing.ParseBriefingDocument(raw)
			if err != nil {
				return fmt.Errorf("invalid briefing: %w", err)
			}

			if interactive {
				return runViewer(b, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			st := display.NewStyles(nil)
			if plain {
				st = display.PlainStyles()
			}
			return writeBriefing(cmd.OutOrStdout(), b, format, st)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output: text, markdown, html, json or yaml")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the tabbed viewer")
	cmd.Flags().BoolVar(&plain, "plain", false, "Never emit terminal colors")
	return cmd
}
