package service

import (
	"testing"

	"ShowroomSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := NewSessionStore()

	sess := store.Create(model.Event{EventID: 1}, testRoomMap(), []int64{1, 2})
	require.NotEmpty(t, sess.ID)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_DefaultTopSelection(t *testing.T) {
	rm := model.RoomMap{}
	for i := int64(1); i <= 15; i++ {
		rm[string(rune('A'+i))] = model.RoomEntry{RoomID: i, Rank: int(16 - i)}
	}
	store := NewSessionStore()

	// 未指定选择：默认取rank前10位
	sess := store.Create(model.Event{EventID: 1}, rm, nil)
	require.Len(t, sess.Selection, 10)
	// rank最好的是RoomID=15（rank=1）
	assert.Equal(t, int64(15), sess.Selection[0])
}

func TestTopRooms_UnrankedLast(t *testing.T) {
	rm := model.RoomMap{
		"A": {RoomID: 1, Rank: 0}, // 未排名
		"B": {RoomID: 2, Rank: 2},
		"C": {RoomID: 3, Rank: 1},
	}

	ids := TopRooms(rm, 2)
	assert.Equal(t, []int64{3, 2}, ids)
}

func TestSession_RoomName(t *testing.T) {
	sess := newSession(model.Event{EventID: 1}, testRoomMap(), []int64{1})
	assert.Equal(t, "A", sess.RoomName(1))
	assert.Equal(t, "", sess.RoomName(99))
}

func TestSession_GiftHistoryIsolation(t *testing.T) {
	sess := newSession(model.Event{EventID: 1}, testRoomMap(), []int64{1})

	merged := sess.MergeGifts(1, []model.GiftLogEntry{{GiftID: 1, CreatedAt: 100, Num: 1}})
	require.Len(t, merged, 1)

	// 返回的是副本，调用方修改不影响内部历史
	merged[0].Point = 999
	assert.Equal(t, int64(0), sess.GiftHistory(1)[0].Point)

	// 其他ルーム的历史互不影响
	assert.Empty(t, sess.GiftHistory(2))
}
