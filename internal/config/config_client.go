package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base address of the portal HTTP API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level configuration of the portalctl terminal
// client, assembled from the shared [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := getStructuredConfigForClient()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}

// getStructuredConfigForClient merges the same sources as
// [GetStructuredConfig] but skips server-side validation: the client does
// not need a DSN or token sign key to run.
func getStructuredConfigForClient() (*StructuredConfig, error) {
	builder := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults()
	if builder.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", builder.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range builder.configs {
		if err := mergeInto(config, cfg); err != nil {
			return nil, err
		}
	}

	return config, nil
}
