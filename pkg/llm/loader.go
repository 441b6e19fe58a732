package llm

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hypecode-tech/saafir/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewFromConfig 根據設定檔建立 Chat Client
func NewFromConfig(rawProviders jsoniter.RawMessage, system *config.SystemConfig) (ChatClient, error) {
	var allAtomicClients []ChatClient

	if rawProviders == nil {
		return nil, fmt.Errorf("missing 'providers' config")
	}

	var groups []ProviderGroupConfig
	if err := json.Unmarshal(rawProviders, &groups); err != nil {
		return nil, fmt.Errorf("failed to parse 'providers' config: %v", err)
	}

	for _, group := range groups {
		slog.Info("Loading provider group", "type", group.Type, "models", len(group.Models))

		factory, ok := GetProviderFactory(group.Type)
		if !ok {
			slog.Warn("⚠️ Unknown provider type", "type", group.Type)
			continue
		}

		clients, err := factory.Create(group, system)
		if err != nil {
			slog.Warn("⚠️ Failed to create clients", "type", group.Type, "error", err)
			continue
		}

		allAtomicClients = append(allAtomicClients, clients...)
	}

	if len(allAtomicClients) == 0 {
		return nil, fmt.Errorf("no chat clients could be initialized")
	}

	slog.Info("✅ Total atomic chat clients initialized", "count", len(allAtomicClients))

	// 如果只有一個，直接回傳
	if len(allAtomicClients) == 1 {
		return allAtomicClients[0], nil
	}

	// 否則包裹在 FallbackClient 中，並代入系統層級的重試設定
	return &FallbackClient{
		Clients:    allAtomicClients,
		MaxRetries: system.MaxRetries,
		RetryDelay: time.Duration(system.RetryDelayMs) * time.Millisecond,
	}, nil
}
