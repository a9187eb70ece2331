package config

import (
	"flag"
	"fmt"
	"os"
)

// Config represents the application configuration
type Config struct {
	// HTTP listen address
	Addr string

	// Assumed label pixel density. Used only to compute a diagnostic
	// physical size; rendering is always 1:1 pixel mapping.
	DPI int

	// Label geometry tokens matched against driver media names, in both
	// unit systems. The millimetre tokens are independent values rather
	// than derived from the inch ones: drivers round differently.
	LabelWidthIn  string
	LabelHeightIn string
	LabelWidthMM  string
	LabelHeightMM string

	// Directory for transient decoded images
	ScratchDir string

	// Max retained job ledger entries, 0 for unbounded
	LedgerCap int

	// Log level (trace, debug, info, warn, error)
	LogLevel string
}

// ParseFlags parses command line flags and returns a Config
func ParseFlags() *Config {
	config := &Config{}

	// Define flags
	flag.StringVar(&config.Addr, "addr", envOr("PRINTBRIDGE_ADDR", ":8080"), "HTTP listen address")
	flag.IntVar(&config.DPI, "dpi", 203, "Assumed label pixel density (diagnostic sizing only)")
	flag.StringVar(&config.LabelWidthIn, "label-width-in", "1.25", "Label width token, inches")
	flag.StringVar(&config.LabelHeightIn, "label-height-in", "2.25", "Label height token, inches")
	flag.StringVar(&config.LabelWidthMM, "label-width-mm", "31", "Label width token, millimetres")
	flag.StringVar(&config.LabelHeightMM, "label-height-mm", "56", "Label height token, millimetres")
	flag.StringVar(&config.ScratchDir, "scratch-dir", os.TempDir(), "Directory for transient decoded images")
	flag.IntVar(&config.LedgerCap, "ledger-cap", 1000, "Max retained job entries, 0 for unbounded")
	flag.StringVar(&config.LogLevel, "log-level", envOr("PRINTBRIDGE_LOG_LEVEL", "info"), "Log level")

	// Parse flags
	flag.Parse()

	// Validate
	if config.Addr == "" {
		fmt.Fprintf(os.Stderr, "Listen address is required\n")
		flag.Usage()
		os.Exit(1)
	}

	if config.DPI <= 0 {
		fmt.Fprintf(os.Stderr, "DPI must be positive\n")
		flag.Usage()
		os.Exit(1)
	}

	for _, token := range []string{config.LabelWidthIn, config.LabelHeightIn, config.LabelWidthMM, config.LabelHeightMM} {
		if token == "" {
			fmt.Fprintf(os.Stderr, "Label size tokens must be non-empty\n")
			flag.Usage()
			os.Exit(1)
		}
	}

	if config.LedgerCap < 0 {
		fmt.Fprintf(os.Stderr, "Ledger capacity must not be negative\n")
		flag.Usage()
		os.Exit(1)
	}

	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
