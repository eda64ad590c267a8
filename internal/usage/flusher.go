package usage

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/metadata"
	"github.com/stardust-edu/career-advisor-backend/pkg/lifecycle"
)

const flushInterval = 1 * time.Minute // 计数落库频率

var flushMutex sync.Mutex // 避免定时落库与停机落库竞态

// StartFlushScheduler 启动一个后台Goroutine定期把Redis中的脏计数落库。
// 它接收一个lifecycle.Handle来管理其生命周期。
func StartFlushScheduler(handle *lifecycle.Handle) {
	defer handle.Close() // 确保在退出时通知管理器
	fmt.Println("用量计数落库调度器已启动。")

	for {
		// 使用可中断的休眠代替ticker，收到停机信号时立刻唤醒退出
		if err := handle.Sleep(flushInterval); err != nil {
			fmt.Println("落库调度器: 休眠被中断，正在关闭...")
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("落库调度器: 检测到Redis不可用，跳过本次落库。")
			continue
		}

		if err := FlushDirtyCounters(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("落库调度器错误: %v\n", err)
			}
		}
	}
}

// FlushDirtyCounters 把自上次落库以来发生过增量的计数持久化到数据库。
// dirty set先被原子地改名为processing set再消费；
// 失败时把未消费的成员合并回dirty set，保证不丢计数。
func FlushDirtyCounters(ctx context.Context) (err error) {
	flushMutex.Lock()
	defer flushMutex.Unlock()

	dirtySetExists, err := database.RDB.Exists(ctx, DirtySetKey).Result()
	if err != nil {
		return fmt.Errorf("无法检查DirtySetKey是否存在: %w", err)
	}
	if dirtySetExists == 0 {
		return nil
	}

	// 1. 原子地把dirty set转移到processing set
	pipe := database.RDB.TxPipeline()
	membersCmd := pipe.SMembers(ctx, DirtySetKey)
	pipe.Rename(ctx, DirtySetKey, ProcessingDirtySetKey)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("无法原子地转移dirty set: %w", err)
	}

	// 转移成功后，出错时要把processing set合并回dirty set
	defer func() {
		if err != nil {
			mergePipe := database.RDB.TxPipeline()
			mergePipe.SUnionStore(database.Ctx, DirtySetKey, DirtySetKey, ProcessingDirtySetKey)
			mergePipe.Del(database.Ctx, ProcessingDirtySetKey)
			mergePipe.Exec(database.Ctx)
		} else {
			database.RDB.Del(database.Ctx, ProcessingDirtySetKey)
		}
	}()

	members, err := membersCmd.Result()
	if err != nil {
		return fmt.Errorf("无法读取dirty set成员: %w", err)
	}
	if len(members) == 0 {
		return nil
	}

	// 2. 按(metric, date)分组，批量读取各用户的当前计数
	flushed := 0
	for _, member := range members {
		parts := strings.SplitN(member, "|", 3)
		if len(parts) != 3 {
			fmt.Printf("落库: 跳过格式错误的dirty成员 %q\n", member)
			continue
		}
		metric, date, userID := parts[0], parts[1], parts[2]

		val, getErr := database.RDB.HGet(ctx, CounterKey(metric, date), userID).Result()
		if getErr != nil {
			// 计数器键可能已过期（超过48小时未落库），忽略
			continue
		}
		count, parseErr := strconv.ParseInt(val, 10, 64)
		if parseErr != nil {
			continue
		}

		if dbErr := setCount(database.DB, userID, metric, date, count); dbErr != nil {
			err = fmt.Errorf("落库计数失败 (%s): %w", member, dbErr)
			return err
		}
		flushed++
	}

	// 3. 记录落库水位，便于排查
	if metaErr := metadata.SetLastUsageFlushAt(database.DB, time.Now()); metaErr != nil {
		fmt.Printf("无法记录用量落库水位: %v\n", metaErr)
	}

	fmt.Printf("用量落库完成，共持久化 %d 条计数。\n", flushed)
	return nil
}
