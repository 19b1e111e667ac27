package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/soundify/internal/adapters/ollama"
	"github.com/ewilliams-labs/soundify/internal/adapters/openai"
	"github.com/ewilliams-labs/soundify/internal/adapters/sqlite"
	"github.com/ewilliams-labs/soundify/internal/config"
	"github.com/ewilliams-labs/soundify/internal/core/domain"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
)

func newCompletionProvider(cfg config.CompletionConfig) (ports.CompletionProvider, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(cfg.BaseURL(), cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "ollama":
		return ollama.NewClient(cfg.BaseURL(), cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown completion provider: %s", cfg.Provider)
	}
}

// openAuditRepository returns a nil repository when auditing is disabled.
func openAuditRepository(cfg config.StorageConfig) (*sqlite.Adapter, error) {
	switch cfg.Driver {
	case "none", "":
		return nil, nil
	case "sqlite":
		repo, err := sqlite.NewAdapter(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize audit database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// readQuery decodes a request body from file, or from in when file is "" or "-".
func readQuery(file string, in io.Reader) (domain.RecommendationQuery, error) {
	var q domain.RecommendationQuery

	r := in
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return q, err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return q, err
	}
	if err := json.Unmarshal(data, &q); err != nil {
		return q, fmt.Errorf("decode request body: %w", err)
	}
	return q, nil
}
