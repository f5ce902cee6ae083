package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/provostbot/pkg/log"
)

type AppConfig struct {
	// Transport Flags
	HTTPAddr       string `env:"PROVOST_HTTP_ADDR" envDefault:":8080"`
	EnableTelegram bool   `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Conversation window: number of turns kept for prompt context.
	HistorySize int `env:"PROVOST_HISTORY_SIZE" envDefault:"6"`

	// Routing-prompt growth controls for large catalogs.
	RouterTokenBudget   int `env:"PROVOST_ROUTER_TOKEN_BUDGET" envDefault:"6000"`
	RouterMaxCandidates int `env:"PROVOST_ROUTER_MAX_CANDIDATES" envDefault:"150"`

	// Substrings (case-insensitive) in a grounded answer that trigger the
	// "couldn't find it, here is the reference" response shaping.
	NotFoundMarkers []string `env:"PROVOST_NOT_FOUND_MARKERS" envSeparator:"," envDefault:"not listed,no position with that title"`

	// Contact record returned verbatim for generic "who do I contact" questions.
	ContactDepartment string `env:"PROVOST_CONTACT_DEPARTMENT" envDefault:"Office of the Provost and Executive Vice President"`
	ContactPhone      string `env:"PROVOST_CONTACT_PHONE" envDefault:"408 554 4533"`
	ContactFax        string `env:"PROVOST_CONTACT_FAX" envDefault:"408 551 6074"`
	ContactEmail      string `env:"PROVOST_CONTACT_EMAIL" envDefault:"provost@scu.edu"`

	CatalogIndexPath string `env:"PROVOST_CATALOG_INDEX"`
	ScrapedDir       string `env:"PROVOST_SCRAPED_DIR"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetCatalogIndexPath() string {
	if c.CatalogIndexPath != "" {
		return c.CatalogIndexPath
	}
	return filepath.Join(GetRuntimePath(), "catalog.json")
}

func (c AppConfig) GetScrapedDir() string {
	if c.ScrapedDir != "" {
		return c.ScrapedDir
	}
	return filepath.Join(GetRuntimePath(), "scraped")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(GetRuntimePath(), "provostbot.db")
}
