package usage

import (
	"fmt"
	"sync"
	"time"
)

// --- Redis 键名 ---

const (
	// usageKeyPrefix 是每日计数器Hash的键名前缀。
	// Key: usage:<metric>:<YYYY-MM-DD>
	// Field: 用户UUID
	// Value: 当日计数
	usageKeyPrefix = "usage:"

	// DirtySetKey 是一个Set，记录自上次落库以来发生过增量的计数器。
	// Member: "<metric>|<date>|<userUUID>"
	DirtySetKey = "usage:dirty"

	// ProcessingDirtySetKey 仅在落库过程中使用，
	// flusher把DirtySetKey原子地改名到这里再慢慢消费，失败时合并回去。
	ProcessingDirtySetKey = "usage:dirty:processing"

	// counterTTL 是每日计数器键的生存时间。
	// 当日加次日，保证跨午夜的读取不会命中已过期的键。
	counterTTL = 48 * time.Hour
)

// CounterKey 拼出某个指标在某天的Hash键名。
func CounterKey(metric, date string) string {
	return usageKeyPrefix + metric + ":" + date
}

// DirtyMember 拼出dirty set成员。
func DirtyMember(metric, date, userID string) string {
	return fmt.Sprintf("%s|%s|%s", metric, date, userID)
}

// --- 并发控制 ---

// repoMutex 保护本模块Redis键在重建与落库之间的一致性。
// Track走读锁可以并发执行；重建与落库走写锁互斥。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}
