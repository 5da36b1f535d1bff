package showroom

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomStatusClient(t *testing.T, body string) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/room/event_and_support", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})
	return newTestClient(t, mux)
}

func TestFetchRoomStatus_TopLevelRanking(t *testing.T) {
	c := roomStatusClient(t, `{"ranking":{"rank":2,"point":200,"lower_rank":3,"lower_gap":50},"remain_time":3600}`)

	snap, err := c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(11), snap.RoomID)
	assert.Equal(t, 2, snap.Rank)
	assert.Equal(t, int64(200), snap.Point)
	assert.Equal(t, int64(3600), snap.RemainingTime)
	assert.Equal(t, 3, snap.LowerRank)
	assert.Equal(t, int64(50), snap.LowerGap)
	assert.False(t, snap.PointPending)
}

func TestFetchRoomStatus_SupportInfoNesting(t *testing.T) {
	c := roomStatusClient(t, `{"support_info":{"ranking":{"rank":5,"point":80}},"remain_time":120}`)

	snap, err := c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 5, snap.Rank)
	assert.Equal(t, int64(80), snap.Point)
}

func TestFetchRoomStatus_EventNesting_RemainInsidePayload(t *testing.T) {
	c := roomStatusClient(t, `{"event":{"ranking":{"rank":1,"point":999,"remaining_time":60}}}`)

	snap, err := c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(999), snap.Point)
	assert.Equal(t, int64(60), snap.RemainingTime)
}

func TestFetchRoomStatus_MissingPointOrRemain(t *testing.T) {
	// point缺失：无快照，不合成缺省值
	c := roomStatusClient(t, `{"ranking":{"rank":2},"remain_time":60}`)
	snap, err := c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	assert.Nil(t, snap)

	// 剩余时间缺失：同样无快照
	c = roomStatusClient(t, `{"ranking":{"rank":2,"point":10}}`)
	snap, err = c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFetchRoomStatus_PointStillTallying(t *testing.T) {
	// 活动结束后的占位符：point存在但非数字，标记为集計中
	c := roomStatusClient(t, `{"ranking":{"rank":2,"point":"集計中"},"remain_time":0}`)

	snap, err := c.FetchRoomStatus(context.Background(), 11)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.PointPending)
}
