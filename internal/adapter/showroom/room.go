package showroom

import (
	"ShowroomSync/internal/model"
	"context"
	"fmt"
)

// FetchRoomStatus 拉取单个ルーム的当前排名/点数/剩余时间快照。
// rank/point负载可能嵌在顶层ranking、support_info.ranking或event.ranking之下，
// 按此优先级探测，取第一个存在的。缺少point或剩余时间字段时视为无快照，
// 不合成缺省值。该调用每轮刷新每个选中ルーム各一次，不缓存
func (c *Client) FetchRoomStatus(ctx context.Context, roomID int64) (*model.RoomSnapshot, error) {
	url := fmt.Sprintf("%s/api/room/event_and_support?room_id=%d", c.cfg.BaseURL, roomID)
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	m, ok := asMap(body)
	if !ok {
		return nil, nil
	}

	payload, ok := probeRankingPayload(m)
	if !ok {
		return nil, nil
	}

	pointVal, ok := payload["point"]
	if !ok || pointVal == nil {
		return nil, nil
	}
	remain, ok := firstField(m, "remain_time", "remaining_time")
	if !ok {
		// 剩余时间也可能跟rank/point在同一层
		remain, ok = firstField(payload, "remain_time", "remaining_time")
		if !ok {
			return nil, nil
		}
	}
	remainSec, ok := asInt64(remain)
	if !ok {
		return nil, nil
	}

	snap := &model.RoomSnapshot{
		RoomID:        roomID,
		RemainingTime: remainSec,
	}
	if point, ok := asInt64(pointVal); ok {
		snap.Point = point
	} else {
		// 活动结束后的"集計中"占位符，点数暂不可比较
		snap.PointPending = true
	}
	if rank, ok := asInt64(payload["rank"]); ok {
		snap.Rank = int(rank)
	}
	if lr, ok := asInt64(payload["lower_rank"]); ok {
		snap.LowerRank = int(lr)
	}
	if lg, ok := asInt64(payload["lower_gap"]); ok {
		snap.LowerGap = lg
	}
	return snap, nil
}

// probeRankingPayload 按固定优先级探测rank/point负载的位置
func probeRankingPayload(m map[string]any) (map[string]any, bool) {
	if p, ok := extractNestedMap(m, "ranking"); ok {
		return p, true
	}
	if p, ok := extractNestedMap(m, "support_info", "ranking"); ok {
		return p, true
	}
	if p, ok := extractNestedMap(m, "event", "ranking"); ok {
		return p, true
	}
	return nil, false
}
