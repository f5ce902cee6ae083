package main

import (
	"github.com/sandevgo/provostbot/internal/catalog"
	"github.com/sandevgo/provostbot/internal/config"
	"github.com/sandevgo/provostbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	genScrapedDir string
	genOutPath    string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate the catalog index from scraped page files",
	Long:  `Scans a directory of scraped page JSON files and writes the identifier-to-URL catalog index the router works from.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		appCfg := config.NewAppConfig(ctx)
		scrapedDir := genScrapedDir
		if scrapedDir == "" {
			scrapedDir = appCfg.GetScrapedDir()
		}
		outPath := genOutPath
		if outPath == "" {
			outPath = appCfg.GetCatalogIndexPath()
		}

		index, err := catalog.BuildIndex(ctx, scrapedDir)
		if err != nil {
			return err
		}

		if err := catalog.WriteIndex(outPath, index); err != nil {
			return err
		}

		logger.Info().Int("documents", len(index)).Str("path", outPath).Msg("catalog index written")
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&genScrapedDir, "scraped", "", "directory of scraped page JSON files (default: <runtime>/scraped)")
	genCmd.Flags().StringVar(&genOutPath, "out", "", "output path for the catalog index (default: <runtime>/catalog.json)")
	rootCmd.AddCommand(genCmd)
}
