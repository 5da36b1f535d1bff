package showroom

import (
	"ShowroomSync/internal/model"
	"context"
	"fmt"
)

// FetchGiftCatalog 拉取礼物目录（gift_id → 点数）。上游按normal/special分组
func (c *Client) FetchGiftCatalog(ctx context.Context, roomID int64) (model.GiftCatalog, error) {
	url := fmt.Sprintf("%s/api/live/gift_list?room_id=%d", c.cfg.BaseURL, roomID)
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	m, ok := asMap(body)
	if !ok {
		return nil, fmt.Errorf("礼物目录响应形态不符")
	}

	catalog := make(model.GiftCatalog)
	for _, group := range []string{"normal", "special"} {
		list, ok := asList(m[group])
		if !ok {
			continue
		}
		for _, item := range list {
			gm, ok := asMap(item)
			if !ok {
				continue
			}
			id, ok := asInt64(gm["gift_id"])
			if !ok {
				continue
			}
			point, _ := asInt64(gm["point"])
			catalog[id] = point
		}
	}
	return catalog, nil
}

// FetchGiftLog 拉取单个ルーム最近的礼物投递记录。去重合并在service层完成
func (c *Client) FetchGiftLog(ctx context.Context, roomID int64) ([]model.GiftLogEntry, error) {
	url := fmt.Sprintf("%s/api/live/gift_log?room_id=%d", c.cfg.BaseURL, roomID)
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	list, ok := extractList(body, "gift_log", "gift_list")
	if !ok {
		return nil, nil
	}

	entries := make([]model.GiftLogEntry, 0, len(list))
	for _, item := range list {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		id, ok := asInt64(m["gift_id"])
		if !ok {
			continue
		}
		created, ok := asInt64(m["created_at"])
		if !ok {
			continue
		}
		entry := model.GiftLogEntry{GiftID: id, CreatedAt: created}
		if num, ok := asInt64(m["num"]); ok {
			entry.Num = int(num)
		} else {
			entry.Num = 1
		}
		entry.Point, _ = asInt64(m["point"])
		entries = append(entries, entry)
	}
	return entries, nil
}
