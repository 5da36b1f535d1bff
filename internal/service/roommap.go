package service

import (
	"context"
	"fmt"
	"time"

	"ShowroomSync/internal/cache"
	"ShowroomSync/internal/interfaces"
	"ShowroomSync/internal/model"

	"github.com/sirupsen/logrus"
)

// RoomMapService 把候选排名接口的产出归并为活动的参赛ルーム表，按活动缓存。
// "所有候选都不可用"（错误）与"候选可用但参赛者为零"（空表）是两种结局，保持区分
type RoomMapService struct {
	upstream interfaces.Upstream
	cache    *cache.Cache[int64, model.RoomMap]
	ttl      time.Duration
	maxPages int
	logger   *logrus.Logger
}

// NewRoomMapService 创建参赛表服务
func NewRoomMapService(upstream interfaces.Upstream, ttl time.Duration, maxPages int, logger *logrus.Logger) *RoomMapService {
	return &RoomMapService{
		upstream: upstream,
		cache:    cache.New[int64, model.RoomMap](),
		ttl:      ttl,
		maxPages: maxPages,
		logger:   logger,
	}
}

// ResolveRoomMap 解析活动的参赛表（TTL内走缓存）
func (s *RoomMapService) ResolveRoomMap(ctx context.Context, event *model.Event) (model.RoomMap, error) {
	return s.cache.GetOrFetch(event.EventID, s.ttl, func() (model.RoomMap, error) {
		records, err := s.upstream.ResolveRanking(ctx, event.URLKey, event.EventID, s.maxPages)
		if err != nil {
			return nil, fmt.Errorf("解析活动%d的参赛表失败: %w", event.EventID, err)
		}
		return reduceRoomMap(records), nil
	})
}

// Invalidate 活动切换等场景下主动丢弃缓存的参赛表
func (s *RoomMapService) Invalidate(eventID int64) {
	s.cache.Invalidate(eventID)
}

// reduceRoomMap 归并排名记录：缺ID或缺展示名的条目跳过；
// 展示名重复时后写覆盖（上游不保证唯一，选择以RoomID为准）
func reduceRoomMap(records []model.RankingRecord) model.RoomMap {
	rm := make(model.RoomMap, len(records))
	for _, r := range records {
		if !r.HasRoomID || r.Name == "" {
			continue
		}
		rm[r.Name] = model.RoomEntry{
			RoomID: r.RoomID,
			Rank:   r.Rank,
			Point:  r.Point,
		}
	}
	return rm
}
