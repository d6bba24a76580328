package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/crawl"
	"github.com/fwojciec/pagemd/fs"
	"github.com/fwojciec/pagemd/goquery"
	"github.com/fwojciec/pagemd/htmltomarkdown"
	pagemdhttp "github.com/fwojciec/pagemd/http"
	"github.com/fwojciec/pagemd/rod"
	pagemdslog "github.com/fwojciec/pagemd/slog"
	"github.com/fwojciec/pagemd/sqlite"
	"github.com/fwojciec/pagemd/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if pagemd.ErrorCode(err) == pagemd.EINVALID {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagemd"),
		kong.Description("Turn a web page into clean, de-duplicated markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return pagemd.Errorf(pagemd.EINVALID, "url is required")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return pagemd.Errorf(pagemd.EINVALID, "%s", err)
	}

	if cli.Radial && cli.Term == "" {
		return pagemd.Errorf(pagemd.EINVALID, "--term is required with --radial")
	}

	logLevel := slog.LevelWarn
	if cli.Diagnose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Wire dependencies
	var fetcher pagemd.Fetcher = pagemdhttp.NewFetcher(
		pagemdhttp.WithTimeout(cli.Timeout),
		pagemdhttp.WithInsecure(cli.Insecure),
	)
	defer fetcher.Close()
	if cli.Diagnose {
		fetcher = pagemdslog.NewLoggingFetcher(fetcher, logger)
	}

	// The browser is optional unless rendering is forced. Static pages
	// still work when Chrome is missing.
	var renderer pagemd.Renderer
	if manager, merr := rod.NewBrowserManager(); merr == nil {
		r := rod.NewRenderer(manager)
		defer r.Close()
		renderer = r
		if cli.Diagnose {
			renderer = pagemdslog.NewLoggingRenderer(renderer, logger)
		}
	} else {
		if cli.ForceBrowser {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", merr)
		}
		logger.Warn("browser unavailable, continuing without rendering", "err", merr)
	}

	var cache pagemd.PageCache
	if cli.Cache != "" {
		db := sqlite.NewDB(cli.Cache)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		pages := sqlite.NewPageService(db)
		defer pages.Close()
		cache = pages
	}

	limiter := crawl.NewDomainLimiter(1.0)
	prober := goquery.NewProbe(goquery.WithMinRepeat(cli.MinRepeat))
	extractor := trafilatura.NewExtractor()

	acquirerOpts := []crawl.AcquirerOption{
		crawl.WithLimiter(limiter),
		crawl.WithForceBrowser(cli.ForceBrowser),
		crawl.WithGainCheck(extractor),
	}
	if cache != nil {
		acquirerOpts = append(acquirerOpts, crawl.WithCache(cache))
	}

	normalizer := crawl.NewNormalizer(goquery.NewCleaner(), htmltomarkdown.NewConverter())

	var expander *crawl.Expander
	if cli.RenderLinks {
		expanderOpts := []crawl.ExpanderOption{
			crawl.WithMaxLinks(cli.MaxLinks),
			crawl.WithLinkTimeout(cli.LinkTimeout),
			crawl.WithExpandLimiter(limiter),
		}
		if renderer != nil {
			expanderOpts = append(expanderOpts, crawl.WithRenderer(renderer))
		}
		if cache != nil {
			expanderOpts = append(expanderOpts, crawl.WithExpandCache(cache))
		}
		expander = crawl.NewExpander(fetcher, goquery.NewCollector(), normalizer, expanderOpts...)
	}

	pipeline := &crawl.Pipeline{
		Acquirer:   crawl.NewAcquirer(fetcher, renderer, prober, acquirerOpts...),
		Fragments:  goquery.NewExtractor(),
		Extractor:  extractor,
		Normalizer: normalizer,
		Expander:   expander,
	}

	output, err := pipeline.Run(ctx, crawl.Request{
		URL:          cli.URL,
		Radial:       cli.Radial,
		Term:         cli.Term,
		RadiusLevels: cli.RadiusLevels,
		ExpandLinks:  cli.RenderLinks,
	})
	if err != nil {
		return err
	}

	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	return fs.NewWriter(stdout).Write(cli.Out, output)
}
