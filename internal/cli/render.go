package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ticketgraph/pkg/cache"
	"github.com/matzehuels/ticketgraph/pkg/config"
	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/jira"
	"github.com/matzehuels/ticketgraph/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command. Only
// flags the user sets override the config file.
type renderFlags struct {
	configPath   string
	jql          string
	output       string
	mermaidOut   string
	formats      string
	maxResults   int
	pageSize     int
	flaggedField string
	release      string
	cacheTTL     time.Duration
	redisURL     string
	noCache      bool
}

// renderCommand creates the render command that runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch issues and write the dependency graph",
		Long: `Fetch the issues matching a JQL query and write their dependency graph.

Credentials come from JIRA_EMAIL, JIRA_API_TOKEN and JIRA_BASE_URL, or from
the packed JIRA_DEPENDENCY variable. Settings are read from --config, or from
./ticketgraph.toml when present; flags override both.

Formats: drawio, mermaid, png (default), plus svg, dot and json.`,
		Example: `  ticketgraph render --jql 'project = "ProjectName" AND (fixVersion = "IterationName") ORDER BY priority DESC'
  ticketgraph render --config team.toml -f drawio,svg -o sprint
  ticketgraph render --jql 'project = ABC' --cache-ttl 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default ./"+config.DefaultFileName+" when present)")
	f.StringVar(&flags.jql, "jql", "", "JQL query selecting the issues")
	f.StringVarP(&flags.output, "output", "o", config.DefaultOutput, "base path for drawio, png, svg, dot and json files")
	f.StringVar(&flags.mermaidOut, "mermaid-out", config.DefaultMermaidOutput, "Mermaid output file")
	f.StringVarP(&flags.formats, "format", "f", "", "output format(s): drawio, mermaid, png (default), svg, dot, json (comma-separated)")
	f.IntVar(&flags.maxResults, "max", config.DefaultMaxResults, "maximum number of issues to fetch")
	f.IntVar(&flags.pageSize, "page-size", config.DefaultPageSize, "issues requested per search page")
	f.StringVar(&flags.flaggedField, "flagged-field", "", "custom field marking flagged issues (overrides "+config.EnvFlagged+")")
	f.StringVar(&flags.release, "release", config.DefaultReleaseName, "fix version name that marks release membership")
	f.DurationVar(&flags.cacheTTL, "cache-ttl", 0, "cache responses for this long, e.g. 15m (0 disables)")
	f.StringVar(&flags.redisURL, "redis-url", "", "cache responses in Redis instead of the cache directory")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

// apply copies the flags the user set onto cfg.
func (r *renderFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("jql") {
		cfg.JQL = r.jql
	}
	if changed("output") {
		cfg.Output = r.output
	}
	if changed("mermaid-out") {
		cfg.MermaidOutput = r.mermaidOut
	}
	if changed("format") {
		formats, err := pipeline.ParseFormats(r.formats)
		if err != nil {
			return err
		}
		cfg.Formats = formats
	}
	if changed("max") {
		cfg.MaxResults = r.maxResults
	}
	if changed("page-size") {
		cfg.PageSize = r.pageSize
	}
	if changed("flagged-field") {
		cfg.FlaggedField = r.flaggedField
	}
	if changed("release") {
		cfg.ReleaseName = r.release
	}
	if changed("cache-ttl") {
		cfg.Cache.TTL = r.cacheTTL
	}
	if changed("redis-url") {
		cfg.Cache.RedisURL = r.redisURL
	}
	if r.noCache {
		cfg.Cache.TTL = 0
	}
	return nil
}

// loadConfig reads the config file and the credentials. Credentials are
// checked here so a missing variable fails before any network call.
func (c *CLI) loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path, c.Getenv)
	if err != nil {
		return nil, err
	}
	creds, err := config.LoadCredentials(c.Getenv)
	if err != nil {
		return nil, err
	}
	cfg.Credentials = creds
	return cfg, nil
}

// newClient creates a Jira client for cfg that caches through store.
func (c *CLI) newClient(cfg *config.Config, store cache.Cache) *jira.Client {
	return jira.NewClient(cfg.Credentials, jira.Options{
		FlaggedField: cfg.FlaggedField,
		ReleaseName:  cfg.ReleaseName,
		MaxResults:   cfg.MaxResults,
		PageSize:     cfg.PageSize,
		Retry:        cfg.Retry,
		Cache:        store,
		CacheTTL:     cfg.Cache.TTL,
		Logger:       c.Logger,
	})
}

// runRender fetches, builds, renders and writes, then reports the outcome.
func (c *CLI) runRender(ctx context.Context, cfg *config.Config) error {
	store, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	runner := pipeline.NewRunner(c.newClient(cfg, store), c.Logger)
	prog := newProgress(loggerFromContext(ctx))

	spin := newSpinner(ctx, c.Err, "Building dependency graph...")
	spin.start()

	result, err := runner.Execute(ctx, pipeline.OptionsFromConfig(cfg))
	if result == nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()
	prog.done(fmt.Sprintf("Built graph of %d issues", result.Stats.IssueCount))

	printReport(result)
	return err
}

// printReport prints counts, skipped edges, failed formats and written files.
func printReport(res *pipeline.Result) {
	s := res.Stats
	if len(res.Files) > 0 {
		printSuccess("Wrote %d file(s)", len(res.Files))
	}
	printStats(s.IssueCount, s.EdgeCount, s.FlaggedCount)

	if s.IssueCount == 0 {
		printWarning("The query matched no issues")
	}
	for _, skip := range res.Skipped() {
		printWarning("Skipped %s", errors.UserMessage(skip.Err))
	}
	for _, f := range res.Failed {
		printError("%s", f.Error())
	}
	for _, f := range res.Files {
		printFile(f.Path)
	}
}
