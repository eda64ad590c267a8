package retry

import (
	"context"
	"time"
)

// Do 以固定间隔重试一个操作，最多尝试attempts次。
// 各个端点里手写的"试三次"循环统一收敛到这里，避免每处都复制一份。
// 如果上下文在等待期间被取消，立即返回上下文错误。
func Do(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		// 最后一次失败后不再等待
		if i == attempts-1 {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
