package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"sales-briefing/internal/common/config"
	commonhttp "sales-briefing/internal/common/http"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/display"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"
	"sales-briefing/internal/models"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	client      string
	code        string
	context     string
	format      string
	sample      string
	offline     bool
	interactive bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a briefing for a client",
		Example: `  briefing-cli generate --client "Acme Corp" --code AC-001
  briefing-cli generate --client "Acme Corp" --format markdown > acme.md
  briefing-cli generate --client "Acme Corp" --sample testdata/acme.json --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.client, "client", "", "Client name (required)")
	f.StringVar(&opts.code, "code", "", "Internal account code")
	f.StringVar(&opts.context, "context", "", "Additional context for the briefing")
	f.StringVarP(&opts.format, "format", "f", "text", "Output: text, markdown, html, json or yaml")
	f.StringVar(&opts.sample, "sample", "", "Briefing file shown when generation fails")
	f.BoolVar(&opts.offline, "offline", false, "Skip the gateway and show the --sample briefing")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "Open the tabbed viewer")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if opts.offline && opts.sample == "" {
		return fmt.Errorf("--offline needs --sample")
	}

	var fallback *models.BriefingResult
	if opts.sample != "" {
		b, err := loadBriefingFile(opts.sample)
		if err != nil {
			return fmt.Errorf("failed to load sample %s: %w", opts.sample, err)
		}
		fallback = b
	}

	var briefing *models.BriefingResult
	if !opts.offline {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log := newLogger(cfg)
		svc, err := newBriefingService(cfg, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		input := &generatebriefing.Input{
			ClientName:        opts.client,
			InternalCode:      opts.code,
			AdditionalContext: opts.context,
		}
		run := func() (*models.BriefingResult, error) {
			out, err := svc.Execute(ctx, input)
			if err != nil {
				return nil, err
			}
			return out.Briefing, nil
		}

		if opts.interactive {
			briefing, err = generateWithSpinner("Generating briefing for "+opts.client+"...", run, cmd.InOrStdin(), cmd.ErrOrStderr())
		} else {
			briefing, err = run()
		}
		if err != nil {
			if fallback == nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Generation failed, showing sample briefing: %v\n", err)
		}
	}

	briefing = display.Resolve(briefing, fallback)

	if opts.interactive {
		return runViewer(briefing, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return writeBriefing(cmd.OutOrStdout(), briefing, opts.format, display.NewStyles(nil))
}

func newBriefingService(cfg *config.Config, log logger.Logger) (*generatebriefing.Service, error) {
	bc := generatebriefing.FromAppConfig(cfg)
	if err := bc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}
	// The per-call deadline comes from the service; the client timeout is a backstop.
	client := commonhttp.NewClient(bc.Timeout + 5*time.Second).WithUserAgent("briefing-cli")
	return generatebriefing.NewService(generatebriefing.ServiceDependencies{
		Logger:     log,
		HTTPClient: client,
	}, bc), nil
}

func loadBriefingFile(path string) (*models.BriefingResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("file is empty")
	}
	return generatebriefing.ParseBriefingDocument(raw)
}
