package cli

import (
	"context"
	"fmt"
	"io"

	"sales-briefing/internal/common/config"
	"sales-briefing/internal/display"
	composelinks "sales-briefing/internal/handlers/contact/compose-links"
	"sales-briefing/internal/models"

	"github.com/spf13/cobra"
)

type contactOptions struct {
	contact  models.ContactInfo
	client   models.ClientRecord
	briefing string
	output   string
}

func newContactCmd() *cobra.Command {
	opts := &contactOptions{}
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Compose email, Teams, WhatsApp, calendar and share links",
		Example: `  briefing-cli contact --client "Acme Corp" --name "Elena Petrova" --email elena@acme.example
  briefing-cli contact --client "Acme Corp" --briefing acme.json --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContact(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.client.ClientName, "client", "", "Client name")
	f.StringVar(&opts.client.InternalCode, "code", "", "Internal account code")
	f.StringVar(&opts.contact.Name, "name", "", "Contact name")
	f.StringVar(&opts.contact.Email, "email", "", "Contact email")
	f.StringVar(&opts.contact.Phone, "phone", "", "Contact phone")
	f.StringVar(&opts.contact.Language, "language", "en", "Message language: en, es, fr, de or pt")
	f.StringVar(&opts.briefing, "briefing", "", "Briefing file whose CRM contact fills empty fields")
	f.StringVarP(&opts.output, "output", "o", "text", "Output: text, json or yaml")
	return cmd
}

func runContact(cmd *cobra.Command, opts *contactOptions) error {
	input := &composelinks.Input{Contact: opts.contact, Client: opts.client}

	if opts.briefing != "" {
		b, err := loadBriefingFile(opts.briefing)
		if err != nil {
			return fmt.Errorf("failed to load briefing %s: %w", opts.briefing, err)
		}
		input.CRMData = b.CRMData
		if input.Client.ClientName == "" && b.CompanyInfo != nil {
			input.Client.ClientName = b.CompanyInfo.Name
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	svc := composelinks.NewService(composelinks.ServiceDependencies{Logger: newLogger(cfg)}, contactConfig(cfg))

	out, err := svc.Execute(context.Background(), input)
	if err != nil {
		return err
	}

	if opts.output == "text" {
		return writeLinksText(cmd.OutOrStdout(), out, display.NewStyles(nil))
	}
	return writeStructured(cmd.OutOrStdout(), out, opts.output)
}

func contactConfig(cfg *config.Config) *composelinks.Config {
	if cfg == nil {
		return composelinks.DefaultConfig()
	}
	return composelinks.FromAppConfig(cfg)
}

func writeLinksText(w io.Writer, out *composelinks.Output, st display.Styles) error {
	if out.Contact.Name != "" {
		fmt.Fprintf(w, "%s %s\n\n", st.Title.Render("Contact:"), out.Contact.Name)
	}
	for _, l := range out.ByChannel() {
		label := st.ItemHead.Render(fmt.Sprintf("%-9s", l.Channel))
		if !l.Enabled {
			fmt.Fprintf(w, "%s %s\n", label, st.Empty.Render("unavailable: "+l.Reason))
			continue
		}
		fmt.Fprintf(w, "%s %s\n", label, l.URL)
	}
	return nil
}
