package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/llm/local"
	"github.com/chriscorrea/babel/internal/llm/mock"
	"github.com/chriscorrea/babel/internal/llm/ollama"
)

// AllProviders contains the registered transports
var AllProviders = map[string]common.Provider{
	"local":  local.New(),
	"mock":   mock.New(),
	"ollama": ollama.New(),
}

func init() {
	// the mock engine lets --transport local run without native inference support
	local.RegisterEngine(mock.NewEngine())
}

// CreateProvider creates a client using the central registry
// this will return an error if the transport is not registered or creation fails
func CreateProvider(name string, cfg *config.Config, logger *slog.Logger) (common.LLM, error) {
	provider, exists := AllProviders[name]
	if !exists {
		return nil, common.NewError(common.CategoryConfig,
			fmt.Sprintf("unsupported transport '%s'. Available transports: %s", name, getAvailableProviders()), nil)
	}

	return provider.CreateClient(cfg, logger)
}

// BuildProviderOptions builds transport-specific options from sampling options
// returns nil if the transport is not registered
func BuildProviderOptions(name string, sampling map[string]float64, stop []string) []interface{} {
	provider, exists := AllProviders[name]
	if !exists {
		return nil
	}

	return provider.BuildOptions(sampling, stop)
}

// MessageShape returns the message shape a transport consumes
// unregistered transports get plain messages
func MessageShape(name string) common.MessageShape {
	provider, exists := AllProviders[name]
	if !exists {
		return common.ShapePlain
	}
	return provider.MessageShape()
}

// GetAvailableProviders returns the sorted names of registered transports
func GetAvailableProviders() []string {
	providers := make([]string, 0, len(AllProviders))
	for name := range AllProviders {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// getAvailableProviders returns comma-separated string of available transports
func getAvailableProviders() string {
	providers := GetAvailableProviders()
	if len(providers) == 0 {
		return "none"
	}
	return strings.Join(providers, ", ")
}

// IsProviderRegistered checks if a transport is registered
func IsProviderRegistered(name string) bool {
	_, exists := AllProviders[name]
	return exists
}
