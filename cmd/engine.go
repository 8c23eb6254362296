package cmd

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/hashgraph-online/conversational-agent-sub001/core/config"
	"github.com/hashgraph-online/conversational-agent-sub001/core/convert"
	"github.com/hashgraph-online/conversational-agent-sub001/core/mirror"
	"github.com/hashgraph-online/conversational-agent-sub001/core/resolve"
)

// buildRegistry wires the mirror client and the stock converters into a
// registry configured from cfg.
func buildRegistry(cfg *config.Config) (*convert.Registry, error) {
	client, err := mirror.NewRESTClient(mirror.RESTConfig{
		BaseURL:    cfg.MirrorBaseURL(),
		HTTPClient: &http.Client{Timeout: cfg.Mirror.Timeout.Std()},
		MaxRetries: cfg.Mirror.MaxRetries,
		RateLimit:  rate.Limit(cfg.Mirror.RateLimit),
		CacheTTL:   cfg.Mirror.CacheTTL.Std(),
	})
	if err != nil {
		return nil, err
	}

	registry := convert.NewRegistry(convert.RegistryConfig{
		Mirror:   client,
		CacheTTL: cfg.Detection.CacheTTL.Std(),
	})
	registry.Register(convert.NewTopicToHRL())
	registry.Register(convert.NewAccountToEVMAddress(client))
	registry.Register(convert.NewNormalizeToHRL(convert.NormalizeToHRLConfig{
		Mirror: client,
	}))
	return registry, nil
}

// buildPipeline assembles the standard detection + conversion pipeline.
func buildPipeline(registry *convert.Registry) *resolve.Pipeline {
	pipeline := resolve.NewPipeline(slog.Default())
	pipeline.AddStage(resolve.NewDetectionStage())
	pipeline.AddStage(resolve.NewConversionStage(registry, slog.Default()))
	return pipeline
}
