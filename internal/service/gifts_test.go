package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ShowroomSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeGifts_Idempotent(t *testing.T) {
	batch := []model.GiftLogEntry{
		{GiftID: 1, CreatedAt: 100, Num: 1, Point: 10},
		{GiftID: 2, CreatedAt: 200, Num: 3, Point: 30},
	}

	once := MergeGifts(nil, batch)
	twice := MergeGifts(once, batch)
	assert.Equal(t, once, twice, "同一批次合并两次结果必须不变")
}

func TestMergeGifts_OverlappingWindow(t *testing.T) {
	// 历史[A,B]，新抓取[B,C]（B键完全相同）→ [C,B,A]，B只出现一次
	a := model.GiftLogEntry{GiftID: 1, CreatedAt: 100, Num: 1, Point: 10}
	b := model.GiftLogEntry{GiftID: 2, CreatedAt: 200, Num: 1, Point: 20}
	c := model.GiftLogEntry{GiftID: 3, CreatedAt: 300, Num: 1, Point: 30}

	history := MergeGifts(nil, []model.GiftLogEntry{a, b})
	merged := MergeGifts(history, []model.GiftLogEntry{b, c})

	require.Len(t, merged, 3)
	assert.Equal(t, []model.GiftLogEntry{c, b, a}, merged)
}

func TestMergeGifts_SameGiftDifferentNumKeptSeparate(t *testing.T) {
	// num不同即不同事件，三字段全同才算重复
	e1 := model.GiftLogEntry{GiftID: 1, CreatedAt: 100, Num: 1}
	e2 := model.GiftLogEntry{GiftID: 1, CreatedAt: 100, Num: 2}

	merged := MergeGifts([]model.GiftLogEntry{e1}, []model.GiftLogEntry{e2})
	assert.Len(t, merged, 2)
}

func TestMergeGifts_HistoryNeverShrinks(t *testing.T) {
	history := []model.GiftLogEntry{{GiftID: 1, CreatedAt: 100, Num: 1}}
	merged := MergeGifts(history, nil)
	assert.Len(t, merged, 1)
}

func TestRefreshHistory_ResolvesPointsViaCatalog(t *testing.T) {
	upstream := &stubUpstream{
		fetchGiftLog: func(context.Context, int64) ([]model.GiftLogEntry, error) {
			return []model.GiftLogEntry{
				{GiftID: 1, CreatedAt: 100, Num: 1},            // point缺失
				{GiftID: 2, CreatedAt: 200, Num: 1, Point: 99}, // 自带point，不覆盖
			}, nil
		},
		fetchGiftCatalog: func(context.Context, int64) (model.GiftCatalog, error) {
			return model.GiftCatalog{1: 10, 2: 100}, nil
		},
	}
	svc := NewGiftService(upstream, time.Hour, quietLogger())
	sess := newSession(model.Event{EventID: 1}, model.RoomMap{}, []int64{11})

	history, err := svc.RefreshHistory(context.Background(), sess, 11)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(99), history[0].Point)
	assert.Equal(t, int64(10), history[1].Point)
}

func TestRefreshHistory_FetchFailureKeepsHistory(t *testing.T) {
	svc := NewGiftService(&stubUpstream{
		fetchGiftLog: func(context.Context, int64) ([]model.GiftLogEntry, error) {
			return []model.GiftLogEntry{{GiftID: 1, CreatedAt: 100, Num: 1, Point: 5}}, nil
		},
	}, time.Hour, quietLogger())
	sess := newSession(model.Event{EventID: 1}, model.RoomMap{}, []int64{11})

	history, err := svc.RefreshHistory(context.Background(), sess, 11)
	require.NoError(t, err)
	require.Len(t, history, 1)

	// 第二轮抓取失败：沿用已有历史，本轮不增长
	failing := NewGiftService(&stubUpstream{
		fetchGiftLog: func(context.Context, int64) ([]model.GiftLogEntry, error) {
			return nil, errors.New("transport error")
		},
	}, time.Hour, quietLogger())

	history, err = failing.RefreshHistory(context.Background(), sess, 11)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
