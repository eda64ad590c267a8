package metadata

// 这些键用于metadata表的key列。
const (
	// LastUsageFlushAtKey 记录最近一次用量计数成功落库的时间（RFC3339）。
	// 由usage模块的flusher写入，用于运维排查落库是否停滞。
	LastUsageFlushAtKey = "last_usage_flush_at"
)
