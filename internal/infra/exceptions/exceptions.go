// Package exceptions builds the error catalog and mapping policy from config.
package exceptions

import (
	"log/slog"

	"apiexception/catalog"
	"apiexception/config"
	"apiexception/internal/errors"
	"apiexception/mapper"

	"go.uber.org/fx"
)

// NewRegistry registers the configured host entries on top of the builtin
// catalog. A code that collides with a builtin or with another host entry
// fails startup.
func NewRegistry(cfg *config.Config) (*catalog.Registry, error) {
	entries := make([]catalog.Entry, 0, len(cfg.Catalog.Entries))
	for _, e := range cfg.Catalog.Entries {
		entries = append(entries, catalog.NewEntry(e.Code, e.Message, e.Description))
	}

	registry, err := catalog.Default().With(entries...)
	if err != nil {
		return nil, errors.Wrap(err, "register catalog entries")
	}

	return registry, nil
}

// PolicyParams holds dependencies for the mapping policy, injected by Fx.
type PolicyParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Registry *catalog.Registry
}

// NewPolicy builds the policy shared by the HTTP error handler.
func NewPolicy(params PolicyParams) *mapper.Policy {
	overrides := make(map[string]int, len(params.Config.Catalog.Entries))
	for _, e := range params.Config.Catalog.Entries {
		if e.HTTPStatus != 0 {
			overrides[e.Code] = e.HTTPStatus
		}
	}

	params.Logger.Debug("exception policy ready",
		slog.Int("catalog_entries", params.Registry.Len()),
		slog.Int("status_overrides", len(overrides)),
	)

	return mapper.New(
		mapper.WithStatusMap(mapper.NewStatusMap(overrides)),
		mapper.WithLogger(params.Logger),
		mapper.WithLogging(params.Config.Exceptions.Log),
		mapper.WithErrorDetails(params.Config.Exceptions.ValidationDetails),
		mapper.WithFallbackDescription(params.Config.Exceptions.FallbackDescription),
	)
}
