package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Recurring 固定间隔的循环任务。迭代之间通过ctx协作取消；
// 测试可直接调用RunOnce同步驱动，不依赖真实时间流逝
type Recurring struct {
	Name     string
	Interval time.Duration
	Task     func(ctx context.Context)
	logger   *logrus.Logger
}

// New 创建循环任务
func New(name string, interval time.Duration, task func(ctx context.Context), logger *logrus.Logger) *Recurring {
	return &Recurring{
		Name:     name,
		Interval: interval,
		Task:     task,
		logger:   logger,
	}
}

// RunOnce 同步执行一次任务
func (r *Recurring) RunOnce(ctx context.Context) {
	r.Task(ctx)
}

// Start 阻塞式循环执行，ctx取消后在下一次迭代边界退出。
// 进行中的单次任务不会被打断，只是不再开始新的迭代
func (r *Recurring) Start(ctx context.Context) {
	r.logger.WithFields(logrus.Fields{
		"task":     r.Name,
		"interval": r.Interval.String(),
	}).Info("定时任务启动")

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.WithField("task", r.Name).Info("定时任务退出")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}
