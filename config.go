package peatrack

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// PlanEntry is one line of the contribution plan: a ticker and the fixed
// amount invested in it every month. A zero amount means the ticker is
// tracked but never purchased automatically.
type PlanEntry struct {
	Ticker  string  `toml:"ticker"`
	Monthly float64 `toml:"monthly"`
}

// MailConfig holds the mail relay settings. The account password is never
// stored in the file; it is read from the EMAIL_PASS environment variable.
type MailConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	From string `toml:"from"`
	To   string `toml:"to"`

	Password string `toml:"-"`
}

// PagesConfig identifies the static-site deployment hosting the dashboard,
// used only to build the public URL shown in the email footer.
type PagesConfig struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
}

// URL returns the public dashboard URL, or "" when unset.
func (p PagesConfig) URL() string {
	if p.Owner == "" || p.Repo == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.github.io/%s/", p.Owner, p.Repo)
}

// Config gathers everything a run needs. It is loaded once and passed
// explicitly to the engines; there is no package-level state.
type Config struct {
	Currency  string `toml:"currency"`
	Benchmark string `toml:"benchmark"`

	LedgerFile    string `toml:"ledger_file"`
	HistoryFile   string `toml:"history_file"`
	DashboardFile string `toml:"dashboard_file"`

	Plan  []PlanEntry `toml:"plan"`
	Mail  MailConfig  `toml:"mail"`
	Pages PagesConfig `toml:"pages"`
}

// Tickers returns the plan tickers, in plan order. That order is also the
// column order of the history file.
func (c *Config) Tickers() []string {
	tickers := make([]string, 0, len(c.Plan))
	for _, e := range c.Plan {
		tickers = append(tickers, e.Ticker)
	}
	return tickers
}

// Monthly returns the monthly contribution configured for a ticker, 0 if none.
func (c *Config) Monthly(ticker string) float64 {
	for _, e := range c.Plan {
		if e.Ticker == ticker {
			return e.Monthly
		}
	}
	return 0
}

// DefaultConfig returns the built-in contribution plan, used when no config
// file exists.
func DefaultConfig() *Config {
	return &Config{
		Currency:      "EUR",
		Benchmark:     "CW8.PA", // MSCI World ETF
		LedgerFile:    "portfolio_state.csv",
		HistoryFile:   "pea_history.csv",
		DashboardFile: "index.html",
		Plan: []PlanEntry{
			{Ticker: "ESE.PA", Monthly: 250},
			{Ticker: "ETZ.PA", Monthly: 140},
			{Ticker: "PAASI.PA", Monthly: 60},
			{Ticker: "AI.PA", Monthly: 0},
			{Ticker: "TTE.PA", Monthly: 0},
		},
		Mail: MailConfig{Host: "smtp.gmail.com", Port: 587},
	}
}

// LoadConfig reads the TOML configuration file and completes it from the
// environment. A missing file is not an error: the default plan is used.
// A present but unparseable file is a hard error.
func LoadConfig(path string) (*Config, error) {
	// A local .env completes the environment, if present.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot read config %q: %w", path, err)
		}
	}

	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("EMAIL_RECEIVER"); v != "" {
		cfg.Mail.To = v
	}
	cfg.Mail.Password = os.Getenv("EMAIL_PASS")

	if len(cfg.Plan) == 0 {
		return nil, fmt.Errorf("config %q has an empty contribution plan", path)
	}
	return cfg, nil
}
