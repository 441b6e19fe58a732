package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ChatClient 通用 LLM 客戶端介面
type ChatClient interface {
	// Complete 送出一組訊息並取得單一文字回應
	// messages: system/user 訊息序列
	// 返回值: 模型產生的原始文字（未經任何解析）
	Complete(ctx context.Context, messages []Message) (string, error)

	// IsTransientError 判斷是否為暫時性錯誤 (如 503, Rate Limit)
	IsTransientError(err error) bool
}

// FallbackClient 支援多個 Client 分級嘗試
type FallbackClient struct {
	Clients    []ChatClient
	MaxRetries int
	RetryDelay time.Duration
}

func (f *FallbackClient) Complete(ctx context.Context, messages []Message) (string, error) {
	var lastErr error
	for i, client := range f.Clients {
		if i > 0 {
			slog.Warn("Previous provider failed. Trying fallback provider", "provider_index", i+1)
		}

		// 使用配置的重試次數，若為 0 則至少執行 1 次
		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				slog.Info("Retrying provider", "provider_index", i+1, "attempt", retry, "max", maxRetries)
				// 稍微等待一下再重試
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			text, err := client.Complete(ctx, messages)
			if err == nil {
				return text, nil
			}

			lastErr = err

			// Check if the error is transient using the client's implementation
			if client.IsTransientError(err) && retry < maxRetries {
				slog.Warn("Provider failed with transient error, retrying", "provider_index", i+1, "error", err)
				continue
			}

			// 非暫時性錯誤，或者已達最大重試次數
			slog.Error("Provider failed", "provider_index", i+1, "error", err)
			break
		}
	}
	return "", fmt.Errorf("all fallback providers failed. Last error: %v", lastErr)
}

// IsTransientError 實作 ChatClient 介面
// FallbackClient 的錯誤意味著所有 Child 都已失敗，因此視為非暫時性
func (f *FallbackClient) IsTransientError(err error) bool {
	return false
}
