package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/vintagefinds/storefront/config"
	"github.com/vintagefinds/storefront/internal/adapter/analytics"
	"github.com/vintagefinds/storefront/pkg/sigctx"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	srcPaths := getSrcPaths()
	if len(srcPaths) == 0 {
		fmt.Println("no archived cart event sources given")
		os.Exit(2)
	}

	analyzer := analytics.NewCartDemandAnalyzer(cfg.Analytics.SparkAddr)

	for signal := range analyzer.Do(sigCtx, srcPaths) {
		fmt.Printf(
			"session %q: %d add-to-cart events\n",
			signal.SessionID, signal.AddEvents,
		)
	}
}

func getSrcPaths() []string {
	srcPaths := pflag.StringSliceP(
		"src", "s", nil, "archived cart event files",
	)
	pflag.Parse()
	return *srcPaths
}
