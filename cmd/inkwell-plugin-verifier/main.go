package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/inkwellcms/inkwell/pkg/config"
	"github.com/inkwellcms/inkwell/pkg/observability"
	"github.com/inkwellcms/inkwell/pkg/plugins"
	"github.com/inkwellcms/inkwell/pkg/tenant"

	// Link in every shipped plugin implementation so descriptors resolve
	_ "github.com/inkwellcms/inkwell/pkg/plugins/lua"
	_ "github.com/inkwellcms/inkwell/pkg/plugins/transforms"
)

// Config holds the verifier configuration
type Config struct {
	PluginsFile string
	BlogsFile   string
	LogLevel    string
	Strict      bool
}

// Verifier loads a plugins file for real, reports what registered and what
// was skipped, and cross-checks blog enablement lists against it
func main() {
	config := parseFlags()

	logger := observability.NewLogger(config.LogLevel)

	skips := &skipCollector{}
	logger.AddHook(skips)

	logger.Infof("Verifying plugins file %s", config.PluginsFile)

	total, reg, err := loadRegistry(config.PluginsFile, logger)
	if err != nil {
		logger.Fatalf("Failed to load plugins file: %v", err)
	}

	printLoaded(reg, total)
	printSkipped(skips.records)

	unknown := checkBlogs(config.BlogsFile, reg, logger)

	if config.Strict && (len(skips.records) > 0 || unknown > 0) {
		logger.Errorf("Verification failed: %d skipped, %d unknown blog references", len(skips.records), unknown)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.PluginsFile, "plugins-file", getEnv("INKWELL_PLUGINS_FILE", "plugins.yaml"), "Path to the plugins file")
	flag.StringVar(&config.BlogsFile, "blogs-file", getEnv("INKWELL_BLOGS_FILE", ""), "Path to the blogs file to cross-check (optional)")
	flag.StringVar(&config.LogLevel, "log-level", getEnv("INKWELL_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.BoolVar(&config.Strict, "strict", false, "Exit non-zero when anything is skipped or unknown")

	flag.Parse()

	return config
}

// loadRegistry performs a real registry load against the linked factories
func loadRegistry(path string, logger *logrus.Logger) (int, *plugins.Registry, error) {
	descriptors, err := config.LoadPlugins(path)
	if err != nil {
		return 0, nil, err
	}

	reg := plugins.Load(descriptors, plugins.Options{Logger: logger})
	return len(descriptors), reg, nil
}

func printLoaded(reg *plugins.Registry, total int) {
	fmt.Println("\nLoaded plugins:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVERSION\tIMPL\tEVENTS")
	fmt.Fprintln(w, "──\t────\t───────\t────\t──────")

	for _, p := range reg.List() {
		info := p.Info()

		impl := ""
		if d, err := reg.Descriptor(p.ID()); err == nil {
			impl = d.Impl
		}

		events := make([]string, 0, 4)
		for _, kind := range reg.Events(p.ID()) {
			events = append(events, string(kind))
		}
		subscribed := strings.Join(events, ", ")
		if subscribed == "" {
			subscribed = "(none)"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID(), info.Name, info.Version, impl, subscribed)
	}

	w.Flush()

	fmt.Printf("\nTotal: %d of %d descriptors loaded\n", reg.Count(), total)
}

func printSkipped(records []skipRecord) {
	if len(records) == 0 {
		return
	}

	fmt.Println("\nSkipped descriptors:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tIMPL\tREASON\tDETAIL")
	fmt.Fprintln(w, "────\t────\t──────\t──────")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.name, r.impl, r.reason, r.detail)
	}

	w.Flush()
}

// checkBlogs reports blog enablement entries that reference plugin ids the
// registry does not have
func checkBlogs(path string, reg *plugins.Registry, logger *logrus.Logger) int {
	if path == "" {
		return 0
	}

	logger.Infof("Cross-checking blogs file %s", path)

	store := tenant.NewStore(path, logger)
	if err := store.Load(); err != nil {
		logger.Errorf("Failed to load blogs file: %v", err)
		return 1
	}

	unknown := 0
	for _, b := range store.Blogs() {
		for _, id := range store.EnabledPlugins(b.ID) {
			if !reg.Has(id) {
				fmt.Printf("blog %q enables unknown plugin id %q\n", b.ID, id)
				unknown++
			}
		}
	}

	if unknown == 0 {
		fmt.Printf("\nBlog references: all plugin ids in %s resolve\n", path)
	}

	return unknown
}

// skipCollector records registry skip warnings so the report can show them
// after the load finishes
type skipCollector struct {
	records []skipRecord
}

type skipRecord struct {
	name   string
	impl   string
	reason string
	detail string
}

func (c *skipCollector) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel}
}

func (c *skipCollector) Fire(entry *logrus.Entry) error {
	reason, ok := entry.Data["reason"].(string)
	if !ok {
		return nil
	}

	r := skipRecord{reason: reason, detail: entry.Message}
	if name, ok := entry.Data["plugin"].(string); ok {
		r.name = name
	}
	if impl, ok := entry.Data["impl"].(string); ok {
		r.impl = impl
	}
	c.records = append(c.records, r)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
