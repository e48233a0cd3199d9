package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketgraph/pkg/config"
	"github.com/matzehuels/ticketgraph/pkg/jira"
)

// fieldsCommand lists the fields that could carry the impediment flag.
func (c *CLI) fieldsCommand() *cobra.Command {
	var (
		configPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List custom fields that may mark flagged issues",
		Long: `List the site's fields whose names look like the impediment flag.

Use the id of the right field with --flagged-field or ` + config.EnvFlagged + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			return c.runFields(cmd.Context(), cfg, all)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file")
	cmd.Flags().BoolVar(&all, "all", false, "list every field, not just flag candidates")

	return cmd
}

func (c *CLI) runFields(ctx context.Context, cfg *config.Config, all bool) error {
	client := c.newClient(cfg, nil)

	spin := newSpinner(ctx, c.Err, "Listing fields...")
	spin.start()
	fields, err := client.ListFields(ctx)
	if err != nil {
		spin.fail("Could not list fields")
		return err
	}
	spin.stop()
	loggerFromContext(ctx).Debug("Listed fields", "count", len(fields))

	if !all {
		fields = jira.FlagCandidates(fields)
	}
	if len(fields) == 0 {
		printWarning("No flag-like fields found")
		return nil
	}

	printInfo("%d field(s)", len(fields))
	for _, f := range fields {
		name := f.Name
		if f.ID == cfg.FlaggedField {
			name += StyleHighlight.Render(" (configured)")
		}
		printKeyValue(f.ID, name)
	}
	printNewline()
	printNextStep("Use a field", fmt.Sprintf("export %s=%s", config.EnvFlagged, fields[0].ID))
	return nil
}
