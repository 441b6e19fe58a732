// Package autoload 匯入所有內建的 Channel 實作，觸發各自的 init() 註冊。
// 嵌入端只想啟用部分平台時，可以略過本套件改為逐一匯入。
package autoload

import (
	_ "github.com/hypecode-tech/saafir/pkg/channels/telegram"
	_ "github.com/hypecode-tech/saafir/pkg/channels/web"
)
