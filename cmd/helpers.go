package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/honei/prospect-cli/internal/history"
	"github.com/honei/prospect-cli/internal/osint"
	anthropicpkg "github.com/honei/prospect-cli/pkg/anthropic"
	"github.com/honei/prospect-cli/pkg/gemini"
)

// initProvider builds the configured research backend. Reports a
// configuration error before any request is attempted.
func initProvider() (osint.Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		if cfg.Gemini.Key == "" {
			return nil, &osint.ConfigurationError{Missing: "PROSPECT_GEMINI_KEY"}
		}
		client := gemini.NewClient(cfg.Gemini.Key,
			gemini.WithBaseURL(cfg.Gemini.BaseURL),
			gemini.WithModel(cfg.Gemini.Model),
		)
		return osint.NewGeminiProvider(client), nil
	case "claude":
		if cfg.Anthropic.Key == "" {
			return nil, &osint.ConfigurationError{Missing: "PROSPECT_ANTHROPIC_KEY"}
		}
		client := anthropicpkg.NewClient(cfg.Anthropic.Key,
			anthropicpkg.WithModel(cfg.Anthropic.Model),
			anthropicpkg.WithMaxSearches(cfg.Anthropic.MaxSearches),
		)
		return osint.NewClaudeProvider(client), nil
	}
	return nil, eris.Errorf("unknown provider %q (gemini, claude)", cfg.Provider)
}

// initStore opens the dossier history on the configured backend. The
// returned closer is a no-op for the file driver.
func initStore(ctx context.Context) (*history.Store, func() error, error) {
	switch cfg.History.Driver {
	case "file", "":
		st, err := history.NewStore(ctx, history.NewFilePort(cfg.History.Path))
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	case "sqlite":
		port, err := history.NewSQLitePort(ctx, cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		st, err := history.NewStore(ctx, port)
		if err != nil {
			port.Close()
			return nil, nil, err
		}
		return st, port.Close, nil
	}
	return nil, nil, eris.Errorf("unknown history driver %q (file, sqlite)", cfg.History.Driver)
}
