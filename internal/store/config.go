package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Indices   []string `yaml:"indices"`
	Watchlist struct {
		Tech       []string `yaml:"tech"`
		Industrial []string `yaml:"industrial"`
	} `yaml:"watchlist"`
	Quotes struct {
		Provider string `yaml:"provider"` // YAHOO or KITE
		Exchange string `yaml:"exchange"` // KITE only
	} `yaml:"quotes"`
	Selection struct {
		Keywords               []string `yaml:"keywords"`
		VolatilityPct          float64  `yaml:"volatility_pct"`
		IndustrialMinChangePct float64  `yaml:"industrial_min_change_pct"`
		MaxPerCompany          int      `yaml:"max_per_company"`
		MinSummaries           int      `yaml:"min_summaries"`
		MenuPerSymbol          int      `yaml:"menu_per_symbol"`
	} `yaml:"selection"`
	Scraper struct {
		TimeoutSeconds  int `yaml:"timeout_seconds"`
		MaxArticleChars int `yaml:"max_article_chars"`
	} `yaml:"scraper"`
	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, CLAUDE or empty for noop
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
	Output struct {
		Dir     string `yaml:"dir"`
		Archive string `yaml:"archive"` // sqlite file, empty disables archiving
	} `yaml:"output"`
}

// envOverrides are applied on top of the YAML file so deployments can tweak
// the run without editing config.yaml.
type envOverrides struct {
	QuoteProvider string `env:"PULSE_QUOTE_PROVIDER"`
	LLMProvider   string `env:"PULSE_LLM_PROVIDER"`
	LLMModel      string `env:"PULSE_LLM_MODEL"`
	LLMBaseURL    string `env:"PULSE_LLM_BASE_URL"`
	OutputDir     string `env:"PULSE_OUTPUT_DIR"`
	ArchivePath   string `env:"PULSE_ARCHIVE_PATH"`
}

func defaultKeywords() []string {
	return []string{
		"Earnings", "Guidance", "Acquisition", "Layoffs",
		"CEO", "FDA", "Lawsuit", "Breakthrough",
	}
}

func (c *Config) Validate() error {
	if c.Quotes.Provider != "YAHOO" && c.Quotes.Provider != "KITE" {
		return fmt.Errorf("invalid quotes.provider '%s': must be 'YAHOO' or 'KITE'", c.Quotes.Provider)
	}
	if len(c.Indices) == 0 && len(c.Watchlist.Tech) == 0 && len(c.Watchlist.Industrial) == 0 {
		return errors.New("watchlist cannot be empty")
	}
	if c.Selection.VolatilityPct <= 0 {
		return fmt.Errorf("selection.volatility_pct must be positive, got %.2f", c.Selection.VolatilityPct)
	}
	if c.Selection.MaxPerCompany < 1 {
		return fmt.Errorf("selection.max_per_company must be >= 1, got %d", c.Selection.MaxPerCompany)
	}
	if c.Selection.MinSummaries < 0 {
		return fmt.Errorf("selection.min_summaries cannot be negative, got %d", c.Selection.MinSummaries)
	}
	if c.LLM.Provider != "" && c.LLM.Provider != "OPENAI" && c.LLM.Provider != "CLAUDE" {
		return fmt.Errorf("llm.provider must be 'OPENAI', 'CLAUDE' or empty, got '%s'", c.LLM.Provider)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	c.applyOverrides(ov)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Quotes.Provider == "" {
		c.Quotes.Provider = "YAHOO"
	}
	if len(c.Selection.Keywords) == 0 {
		c.Selection.Keywords = defaultKeywords()
	}
	if c.Selection.VolatilityPct == 0 {
		c.Selection.VolatilityPct = 3.0
	}
	if c.Selection.IndustrialMinChangePct == 0 {
		c.Selection.IndustrialMinChangePct = 1.5
	}
	if c.Selection.MaxPerCompany == 0 {
		c.Selection.MaxPerCompany = 2
	}
	if c.Selection.MinSummaries == 0 {
		c.Selection.MinSummaries = 4
	}
	if c.Selection.MenuPerSymbol == 0 {
		c.Selection.MenuPerSymbol = 8
	}
	if c.Scraper.TimeoutSeconds == 0 {
		c.Scraper.TimeoutSeconds = 30
	}
	if c.Scraper.MaxArticleChars == 0 {
		c.Scraper.MaxArticleChars = 12000
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.1
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "finance_temp_data"
	}
}

func (c *Config) applyOverrides(ov envOverrides) {
	if ov.QuoteProvider != "" {
		c.Quotes.Provider = ov.QuoteProvider
	}
	if ov.LLMProvider != "" {
		c.LLM.Provider = ov.LLMProvider
	}
	if ov.LLMModel != "" {
		c.LLM.Model = ov.LLMModel
	}
	if ov.LLMBaseURL != "" {
		c.LLM.BaseURL = ov.LLMBaseURL
	}
	if ov.OutputDir != "" {
		c.Output.Dir = ov.OutputDir
	}
	if ov.ArchivePath != "" {
		c.Output.Archive = ov.ArchivePath
	}
}
