package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sahalashfaq/linkaudit/internal/config"
	"github.com/sahalashfaq/linkaudit/internal/models"
	"github.com/sahalashfaq/linkaudit/pkg/crawler"
	"github.com/sahalashfaq/linkaudit/pkg/report"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "linkaudit",
	Short: "linkaudit - site-health link checker",
	Long: `linkaudit crawls a website breadth-first from a seed URL and reports
every discovered link as healthy, redirected, broken or unreachable.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var scanCmd = &cobra.Command{
	Use:   "scan [URL]",
	Short: "Crawl a site and report link health",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := log.New(os.Stdout, "", 0)
		c, err := crawler.New(crawler.Options{
			SeedURL:         args[0],
			MaxPages:        cfg.Crawler.MaxPages,
			Workers:         cfg.Crawler.Workers,
			IncludeExternal: cfg.Crawler.IncludeExternal,
			FollowRedirects: cfg.Crawler.FollowRedirects,
			Delay:           cfg.Crawler.Delay,
			PageTimeout:     cfg.Crawler.PageTimeout,
			CheckTimeout:    cfg.Crawler.CheckTimeout,
			UserAgent:       cfg.Crawler.UserAgent,
			Progress:        &logProgress{logger: logger},
			Logger:          logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create crawler: %w", err)
		}

		rep := c.Run(cmd.Context())

		logger.Println()
		logger.Printf("Pages crawled: %d", rep.PagesVisited)
		logger.Printf("Broken links found: %d", rep.BrokenCount())
		logger.Printf("Redirects found: %d", rep.RedirectCount())
		logger.Printf("Scan finished in %.1f seconds", rep.Elapsed.Seconds())
		logger.Println()

		rep.WriteTable(os.Stdout, report.View(cfg.Output.View))

		csvPath := cfg.Output.CSVPath
		if exportCSV, _ := cmd.Flags().GetBool("csv"); exportCSV && csvPath == "" {
			seed, _ := url.Parse(args[0])
			csvPath = report.DefaultCSVName(seed.Host)
		}
		if csvPath != "" {
			if err := rep.SaveCSV(csvPath); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}
			logger.Printf("Report saved to %s", csvPath)
		}
		return nil
	},
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-pages") {
		cfg.Crawler.MaxPages, _ = flags.GetInt("max-pages")
	}
	if flags.Changed("workers") {
		cfg.Crawler.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("external") {
		cfg.Crawler.IncludeExternal, _ = flags.GetBool("external")
	}
	if flags.Changed("follow-redirects") {
		cfg.Crawler.FollowRedirects, _ = flags.GetBool("follow-redirects")
	}
	if flags.Changed("delay") {
		cfg.Crawler.Delay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("view") {
		cfg.Output.View, _ = flags.GetString("view")
	}
	if flags.Changed("output") {
		cfg.Output.CSVPath, _ = flags.GetString("output")
	}
}

// logProgress mirrors crawl events onto the terminal.
type logProgress struct {
	logger *log.Logger
}

func (p *logProgress) PageVisited(visited, budget int, pageURL string) {
	p.logger.Printf("Scanning page %d/%d: %s", visited, budget, pageURL)
}

func (p *logProgress) LinkChecked(rec models.LinkRecord) {
	if rec.Outcome == models.OutcomeOK {
		return
	}
	p.logger.Printf("  %s -> %s [%s %s]", rec.Page, rec.Link, rec.Status(), rec.Outcome)
}

func init() {
	scanCmd.Flags().Int("max-pages", 80, "Maximum pages to crawl (10-300)")
	scanCmd.Flags().Int("workers", 10, "Concurrent status checks (4-20)")
	scanCmd.Flags().Bool("external", false, "Also check external links (slower)")
	scanCmd.Flags().Bool("follow-redirects", true, "Treat redirects as OK (301/302/307/308)")
	scanCmd.Flags().Duration("delay", 0, "Politeness delay between page visits")
	scanCmd.Flags().String("view", "all", "Table view: all, broken or redirects")
	scanCmd.Flags().String("output", "", "CSV export path")
	scanCmd.Flags().Bool("csv", false, "Export CSV to broken_links_<host>.csv")

	rootCmd.AddCommand(scanCmd)
	rootCmd.PersistentFlags().String("config", "", "Config file path")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
