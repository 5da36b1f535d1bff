package showroom

import (
	"ShowroomSync/internal/model"
	"context"
	"fmt"
)

// FetchOnlives 拉取当前直播中ルーム的集合。
// 上游可能按ジャンル嵌套分组（onlives[].lives[]），也可能是若干平铺列表；
// 全部压平后逐条提取。ルームID非数字或缺失的条目静默跳过
func (c *Client) FetchOnlives(ctx context.Context) (model.LiveIndex, error) {
	url := fmt.Sprintf("%s/api/live/onlives", c.cfg.BaseURL)
	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	index := make(model.LiveIndex)
	for _, item := range flattenLiveEntries(body) {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		id, ok := asInt64(m["room_id"])
		if !ok {
			continue
		}
		entry := model.LiveStatusEntry{RoomID: id}
		entry.StartedAt, _ = asInt64(m["started_at"])
		if prt, ok := asInt64(m["premium_room_type"]); ok {
			entry.PremiumRoomType = int(prt)
		}
		index[id] = entry
	}
	return index, nil
}

// flattenLiveEntries 把各种嵌套形态压平为单一条目列表
func flattenLiveEntries(body any) []any {
	var entries []any

	if m, ok := asMap(body); ok {
		// 形态1：{onlives:[{genre_id..., lives:[...]}]}
		if groups, ok := asList(m["onlives"]); ok {
			for _, g := range groups {
				gm, ok := asMap(g)
				if !ok {
					// 分组元素本身就是直播条目
					entries = append(entries, g)
					continue
				}
				if lives, ok := asList(gm["lives"]); ok {
					entries = append(entries, lives...)
				} else {
					entries = append(entries, g)
				}
			}
			return entries
		}
		// 形态2：若干平铺列表
		for _, key := range []string{"lives", "onlive_list", "live_list"} {
			if lives, ok := asList(m[key]); ok {
				entries = append(entries, lives...)
			}
		}
		return entries
	}

	// 形态3：裸数组
	if l, ok := asList(body); ok {
		entries = append(entries, l...)
	}
	return entries
}
