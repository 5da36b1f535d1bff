package service

import (
	"context"
	"sort"
	"time"

	"ShowroomSync/internal/cache"
	"ShowroomSync/internal/interfaces"
	"ShowroomSync/internal/model"

	"github.com/sirupsen/logrus"
)

// GiftService 礼物记录的增量抓取与去重合并。历史由会话持有，此处只负责合并规则与点数补齐
type GiftService struct {
	upstream     interfaces.Upstream
	catalogCache *cache.Cache[int64, model.GiftCatalog]
	catalogTTL   time.Duration
	logger       *logrus.Logger
}

// NewGiftService 创建礼物服务
func NewGiftService(upstream interfaces.Upstream, catalogTTL time.Duration, logger *logrus.Logger) *GiftService {
	return &GiftService{
		upstream:     upstream,
		catalogCache: cache.New[int64, model.GiftCatalog](),
		catalogTTL:   catalogTTL,
		logger:       logger,
	}
}

// RefreshHistory 抓取最新礼物记录并合并进会话的历史。
// 抓取失败按可恢复缺失处理：记录警告并返回已有历史，本轮不增长
func (s *GiftService) RefreshHistory(ctx context.Context, sess *Session, roomID int64) ([]model.GiftLogEntry, error) {
	fresh, err := s.upstream.FetchGiftLog(ctx, roomID)
	if err != nil {
		s.logger.WithError(err).WithField("room_id", roomID).Warn("礼物记录抓取失败，沿用已有历史")
		return sess.GiftHistory(roomID), nil
	}
	s.resolvePoints(ctx, roomID, fresh)
	return sess.MergeGifts(roomID, fresh), nil
}

// resolvePoints 用礼物目录补齐缺失的点数（目录走TTL缓存）
func (s *GiftService) resolvePoints(ctx context.Context, roomID int64, entries []model.GiftLogEntry) {
	needLookup := false
	for i := range entries {
		if entries[i].Point == 0 {
			needLookup = true
			break
		}
	}
	if !needLookup {
		return
	}

	catalog, err := s.catalogCache.GetOrFetch(roomID, s.catalogTTL, func() (model.GiftCatalog, error) {
		return s.upstream.FetchGiftCatalog(ctx, roomID)
	})
	if err != nil {
		s.logger.WithError(err).WithField("room_id", roomID).Warn("礼物目录拉取失败，点数保持原样")
		return
	}
	for i := range entries {
		if entries[i].Point == 0 {
			entries[i].Point = catalog[entries[i].GiftID]
		}
	}
}

// MergeGifts 去重合并：以(gift_id, created_at, num)为键，已存在的条目不再追加；
// 合并后整体按created_at降序。幂等——同一批次合并两次结果不变；历史只增不减
func MergeGifts(history, fresh []model.GiftLogEntry) []model.GiftLogEntry {
	seen := make(map[model.GiftKey]struct{}, len(history))
	for _, e := range history {
		seen[e.Key()] = struct{}{}
	}

	merged := append([]model.GiftLogEntry(nil), history...)
	for _, e := range fresh {
		if _, dup := seen[e.Key()]; dup {
			continue
		}
		seen[e.Key()] = struct{}{}
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt > merged[j].CreatedAt
	})
	return merged
}
