package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ShowroomSync/internal/cache"
	"ShowroomSync/internal/interfaces"
	"ShowroomSync/internal/model"

	"github.com/sirupsen/logrus"
)

// ErrEventNotFound 目录中不存在该活动
var ErrEventNotFound = errors.New("service: 活动不存在")

const catalogCacheKey = "catalog"

// CatalogService 活动目录：合并开催中与已结束两类活动，过滤不可展示条目，整体缓存
type CatalogService struct {
	upstream   interfaces.Upstream
	cache      *cache.Cache[string, []model.Event]
	ttl        time.Duration
	pageBudget int
	logger     *logrus.Logger
}

// NewCatalogService 创建活动目录服务
func NewCatalogService(upstream interfaces.Upstream, ttl time.Duration, pageBudget int, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		upstream:   upstream,
		cache:      cache.New[string, []model.Event](),
		ttl:        ttl,
		pageBudget: pageBudget,
		logger:     logger,
	}
}

// ListEvents 返回过滤后的合并目录（TTL内走缓存）。
// 已结束活动的名称加前缀标记，插入顺序保持分页产出顺序，不重排
func (s *CatalogService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.cache.GetOrFetch(catalogCacheKey, s.ttl, func() ([]model.Event, error) {
		return s.fetchCatalog(ctx)
	})
}

// fetchCatalog 两类状态各自分页拉取；单类失败只放弃该类，另一类的部分结果照常返回
func (s *CatalogService) fetchCatalog(ctx context.Context) ([]model.Event, error) {
	var combined []model.Event
	var failures int

	for _, status := range []model.EventStatus{model.EventStatusOngoing, model.EventStatusEnded} {
		events, err := s.upstream.FetchEvents(ctx, status, s.pageBudget)
		if err != nil {
			failures++
			s.logger.WithError(err).WithField("status", status).Warn("该状态的活动列表拉取失败，仅保留已取得的页")
		}
		for _, ev := range events {
			if !ev.Listable() {
				continue
			}
			if status == model.EventStatusEnded {
				ev.Name = model.EndedNameMarker + ev.Name
			}
			combined = append(combined, ev)
		}
	}

	// 两类全失败且一无所获才算目录刷新失败（缓存层会退回旧目录）
	if failures == 2 && len(combined) == 0 {
		return nil, fmt.Errorf("活动目录刷新失败：两类状态均未取得数据")
	}
	return combined, nil
}

// EventByID 按event_id查找活动
func (s *CatalogService) EventByID(ctx context.Context, eventID int64) (*model.Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].EventID == eventID {
			ev := events[i]
			return &ev, nil
		}
	}
	return nil, ErrEventNotFound
}
