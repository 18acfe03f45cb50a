package cli

import (
	"fmt"
	"os"

	"sales-briefing/pkg/registry"

	"github.com/spf13/cobra"
)

const defaultRegistryPath = "configs/operation-registry.json"

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect and publish the operation registry",
	}
	cmd.AddCommand(newSchemaListCmd(), newSchemaShowCmd(), newSchemaExportCmd(), newSchemaValidateCmd())
	return cmd
}

func newSchemaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, op := range Catalog().Operations {
				fmt.Fprintf(w, "%-22s %-5s %s\n", op.ID, op.Method, op.Paths[0])
			}
			return nil
		},
	}
}

func newSchemaShowCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "show <operation-id>",
		Short: "Print one operation with its schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := Catalog().Find(args[0])
			if !ok {
				return fmt.Errorf("unknown operation %q (see 'schema list')", args[0])
			}
			return writeStructured(cmd.OutOrStdout(), op, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output: json or yaml")
	return cmd
}

func newSchemaExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the operation registry as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := Catalog()
			if err := reg.Validate(); err != nil {
				return err
			}
			if out == "-" {
				return writeStructured(cmd.OutOrStdout(), reg, "json")
			}
			if err := registry.SaveRegistry(out, reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d operations to %s\n", len(reg.Operations), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", defaultRegistryPath, "Destination file, or - for stdout")
	return cmd
}

func newSchemaValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a registry file and check it is current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("%s not found; run 'schema export' first", path)
				}
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return err
			}

			for _, op := range Catalog().Operations {
				if _, ok := reg.Find(op.ID); !ok {
					return fmt.Errorf("registry is stale: operation %s is missing", op.ID)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registry validation passed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", defaultRegistryPath, "Registry file")
	return cmd
}
