package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ShowroomSync/internal/cache"
	"ShowroomSync/internal/interfaces"
	"ShowroomSync/internal/model"

	"github.com/sirupsen/logrus"
)

const liveCacheKey = "onlives"

// RefreshService 一轮刷新：并发拉取选中ルーム的快照与直播索引，
// 经gap计算组装成看板存回会话。单个ルーム失败只影响该行，从不放弃整轮
type RefreshService struct {
	upstream  interfaces.Upstream
	liveCache *cache.Cache[string, model.LiveIndex]
	liveTTL   time.Duration
	logger    *logrus.Logger
}

// NewRefreshService 创建刷新服务
func NewRefreshService(upstream interfaces.Upstream, liveTTL time.Duration, logger *logrus.Logger) *RefreshService {
	return &RefreshService{
		upstream:  upstream,
		liveCache: cache.New[string, model.LiveIndex](),
		liveTTL:   liveTTL,
		logger:    logger,
	}
}

// LiveIndex 当前直播中ルーム索引（短TTL缓存，每次成功刷新整体替换）
func (s *RefreshService) LiveIndex(ctx context.Context) (model.LiveIndex, error) {
	return s.liveCache.GetOrFetch(liveCacheKey, s.liveTTL, func() (model.LiveIndex, error) {
		return s.upstream.FetchOnlives(ctx)
	})
}

// Refresh 执行一轮刷新并返回新看板。
// 各ルーム的拉取相互独立、并发执行（worker数即选中数），全部完成后才计算gap；
// 失败或超时的ルーム本轮直接略过，不合成占位行
func (s *RefreshService) Refresh(ctx context.Context, sess *Session) (*model.Board, error) {
	selection := sess.Selection

	snaps := make(map[int64]*model.RoomSnapshot, len(selection))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, roomID := range selection {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			snap, err := s.upstream.FetchRoomStatus(ctx, id)
			if err != nil {
				s.logger.WithError(err).WithField("room_id", id).Warn("ルーム快照拉取失败，本轮略过该行")
				return
			}
			if snap == nil {
				s.logger.WithField("room_id", id).Warn("ルーム快照不含可用的point/剩余时间，本轮略过该行")
				return
			}
			mu.Lock()
			snaps[id] = snap
			mu.Unlock()
		}(roomID)
	}

	live, err := s.LiveIndex(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("直播索引拉取失败，本轮直播标记全部为否")
		live = model.LiveIndex{}
	}
	wg.Wait()

	rows := make([]model.RankedComparisonRow, 0, len(snaps))
	for _, roomID := range selection {
		snap, ok := snaps[roomID]
		if !ok {
			continue
		}
		_, isLive := live[roomID]
		rows = append(rows, model.RankedComparisonRow{
			RoomID:        roomID,
			Name:          sess.RoomName(roomID),
			Rank:          snap.Rank,
			Point:         snap.Point,
			PointPending:  snap.PointPending,
			IsLive:        isLive,
			RemainingTime: snap.RemainingTime,
		})
	}

	rows, gapErr := ComputeGaps(rows)
	if gapErr != nil && !errors.Is(gapErr, ErrNotFinalized) {
		return nil, gapErr
	}

	board := &model.Board{
		EventID:     sess.Event.EventID,
		Rows:        rows,
		Finalized:   gapErr == nil,
		RefreshedAt: time.Now(),
	}
	sess.SetBoard(board)
	return board, nil
}

// RefreshAll 刷新全部活动会话（定时任务入口）。单会话失败不阻塞其余会话
func (s *RefreshService) RefreshAll(ctx context.Context, store *SessionStore) {
	for _, sess := range store.All() {
		if _, err := s.Refresh(ctx, sess); err != nil {
			s.logger.WithError(err).WithField("session_id", sess.ID).Warn("会话刷新失败")
		}
	}
}
