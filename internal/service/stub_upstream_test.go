package service

import (
	"context"
	"io"

	"ShowroomSync/internal/model"

	"github.com/sirupsen/logrus"
)

// stubUpstream 按需注入各方法的测试替身
type stubUpstream struct {
	fetchEvents      func(ctx context.Context, status model.EventStatus, pageBudget int) ([]model.Event, error)
	resolveRanking   func(ctx context.Context, urlKey string, eventID int64, maxPages int) ([]model.RankingRecord, error)
	fetchRoomStatus  func(ctx context.Context, roomID int64) (*model.RoomSnapshot, error)
	fetchOnlives     func(ctx context.Context) (model.LiveIndex, error)
	fetchGiftCatalog func(ctx context.Context, roomID int64) (model.GiftCatalog, error)
	fetchGiftLog     func(ctx context.Context, roomID int64) ([]model.GiftLogEntry, error)
}

func (s *stubUpstream) FetchEvents(ctx context.Context, status model.EventStatus, pageBudget int) ([]model.Event, error) {
	if s.fetchEvents == nil {
		return nil, nil
	}
	return s.fetchEvents(ctx, status, pageBudget)
}

func (s *stubUpstream) ResolveRanking(ctx context.Context, urlKey string, eventID int64, maxPages int) ([]model.RankingRecord, error) {
	if s.resolveRanking == nil {
		return nil, nil
	}
	return s.resolveRanking(ctx, urlKey, eventID, maxPages)
}

func (s *stubUpstream) FetchRoomStatus(ctx context.Context, roomID int64) (*model.RoomSnapshot, error) {
	if s.fetchRoomStatus == nil {
		return nil, nil
	}
	return s.fetchRoomStatus(ctx, roomID)
}

func (s *stubUpstream) FetchOnlives(ctx context.Context) (model.LiveIndex, error) {
	if s.fetchOnlives == nil {
		return model.LiveIndex{}, nil
	}
	return s.fetchOnlives(ctx)
}

func (s *stubUpstream) FetchGiftCatalog(ctx context.Context, roomID int64) (model.GiftCatalog, error) {
	if s.fetchGiftCatalog == nil {
		return model.GiftCatalog{}, nil
	}
	return s.fetchGiftCatalog(ctx, roomID)
}

func (s *stubUpstream) FetchGiftLog(ctx context.Context, roomID int64) ([]model.GiftLogEntry, error) {
	if s.fetchGiftLog == nil {
		return nil, nil
	}
	return s.fetchGiftLog(ctx, roomID)
}

// quietLogger 测试用静默日志
func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
