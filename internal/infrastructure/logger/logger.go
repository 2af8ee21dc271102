package logger

// Logger 通用日誌介面
// 使用者注入自己的實現，不綁定特定日誌庫
type Logger interface {
	Debug(msg string, context ...any)
	Info(msg string, context ...any)
	Warn(msg string, context ...any)
	Error(msg string, context ...any)
	Sync() error
}

// ParseContext 解析變長參數的日誌上下文
// 支持兩種調用風格：
//  1. log.Info("msg", map[string]any{"key": value})
//  2. log.Info("msg", "key", value, "key2", value2)
func ParseContext(context []any) map[string]any {
	if len(context) == 0 {
		return nil
	}

	// 單個 map 參數
	if len(context) == 1 {
		if m, ok := context[0].(map[string]any); ok {
			return m
		}
	}

	// key-value 對
	result := make(map[string]any, len(context)/2)
	for i := 0; i+1 < len(context); i += 2 {
		key, ok := context[i].(string)
		if !ok {
			continue
		}
		result[key] = context[i+1]
	}
	return result
}

// NewNop 創建丟棄所有輸出的 logger（測試用）
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, context ...any) {}
func (nopLogger) Info(msg string, context ...any)  {}
func (nopLogger) Warn(msg string, context ...any)  {}
func (nopLogger) Error(msg string, context ...any) {}
func (nopLogger) Sync() error                      { return nil }
