package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/kkupeople/internal/config"
	"github.com/aleister1102/kkupeople/internal/logger"
	"github.com/aleister1102/kkupeople/internal/models"
	"github.com/aleister1102/kkupeople/internal/orchestrator"
	"github.com/aleister1102/kkupeople/internal/output"
)

func main() {
	os.Exit(run())
}

// run carries the whole program so deferred cleanup (session, runlog
// handle, log flush) happens before the process exits.
func run() int {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	headless := flag.Bool("headless", true, "Run the browser headless (overrides config)")
	backend := flag.String("browser", "", "Browser backend: rod, chromedp or auto (overrides config)")
	outFile := flag.String("out", "", "Output JSON file (overrides config)")
	debugLinks := flag.String("debug-links", "", "Write discovered profile URLs to this file, one per line")
	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}
	headlessSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "headless" {
			headlessSet = true
		}
	})

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", *configFile, err)
	}
	if headlessSet {
		gCfg.BrowserConfig.Headless = *headless
	}
	applyFlagOverrides(gCfg, *backend, *outFile, *debugLinks)

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	// Stdout carries the JSON result; all diagnostics go to the logger.
	writer := output.NewWriter(gCfg.OutputConfig, os.Stdout, zLogger)

	orch, err := orchestrator.New(gCfg, writer, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to build pipeline")
		_ = writer.WriteEmpty()
		return 1
	}
	defer orch.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := orch.Run(ctx)
	if err != nil {
		zLogger.Error().Err(err).Str("run_id", summary.RunID).Msg("Scrape run failed")
		return 1
	}
	if summary.Status == models.RunStatusEmpty {
		zLogger.Warn().Str("run_id", summary.RunID).Msg("Run finished without any records")
	}
	return 0
}

func applyFlagOverrides(gCfg *config.GlobalConfig, backend, outFile, debugLinks string) {
	if backend != "" {
		gCfg.BrowserConfig.Backend = backend
	}
	if outFile != "" {
		gCfg.OutputConfig.File = outFile
	}
	if debugLinks != "" {
		gCfg.ScrapeConfig.DebugLinkFile = debugLinks
	}
}
