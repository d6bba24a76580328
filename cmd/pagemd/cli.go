package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL string `arg:"" required:"" help:"Page URL to process"`

	Out     string        `short:"o" type:"path" help:"Write output to a file instead of stdout"`
	Timeout time.Duration `short:"t" default:"10s" help:"Fetch timeout per attempt"`

	Radial       bool   `help:"Extract term-anchored fragments instead of the whole page"`
	Term         string `help:"Anchor term for radial extraction (required with --radial)"`
	RadiusLevels int    `default:"3" help:"Ancestor levels to ascend from each term match"`
	MinRepeat    int    `default:"2" help:"Repeating-card count below which a page is considered incomplete"`

	RenderLinks bool          `help:"Follow content links and append their markdown"`
	MaxLinks    int           `default:"10" help:"Maximum number of links to follow"`
	LinkTimeout time.Duration `default:"15s" help:"Processing ceiling per linked page"`

	ForceBrowser bool   `help:"Always render in a headless browser, skipping the static fetch"`
	Diagnose     bool   `help:"Enable diagnostic logging of fetches and renders"`
	Insecure     bool   `help:"Skip TLS certificate verification on outbound fetches"`
	Cache        string `type:"path" help:"SQLite page cache path (disabled when empty)"`
}
