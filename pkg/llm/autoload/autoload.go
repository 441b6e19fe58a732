// Package autoload 以 blank import 的方式註冊所有內建 Providers
package autoload

import (
	_ "github.com/hypecode-tech/saafir/pkg/llm/gemini"
	_ "github.com/hypecode-tech/saafir/pkg/llm/ollama"
	_ "github.com/hypecode-tech/saafir/pkg/llm/openailm"
)
