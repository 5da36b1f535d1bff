package showroom

import (
	"ShowroomSync/internal/model"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// FetchEvents 分页拉取指定状态的活动列表。空页是正常终止条件；
// 某页请求失败时返回已累计的条目和该错误，之前的页不作废
func (c *Client) FetchEvents(ctx context.Context, status model.EventStatus, pageBudget int) ([]model.Event, error) {
	includeEnded := 0
	if status == model.EventStatusEnded {
		includeEnded = 1
	}

	var events []model.Event
	for page := 1; page <= pageBudget; page++ {
		url := fmt.Sprintf("%s/api/event/search?page=%d&include_ended=%d", c.cfg.BaseURL, page, includeEnded)
		body, err := c.getJSON(ctx, url)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				break
			}
			c.logger.WithError(err).WithFields(logrus.Fields{
				"status": status,
				"page":   page,
			}).Warn("活动列表分页请求失败，终止该状态的分页")
			return events, err
		}

		// 顶层形态：{events:[...]} / {event_list:[...]} / 裸数组
		list, ok := extractList(body, "events", "event_list")
		if !ok || len(list) == 0 {
			break
		}

		for _, item := range list {
			m, ok := asMap(item)
			if !ok {
				continue
			}
			ev, ok := parseEvent(m)
			if !ok {
				continue
			}
			events = append(events, ev)
		}
	}
	return events, nil
}

// parseEvent 解析单条活动记录。event_id与名称缺失的条目丢弃
func parseEvent(m map[string]any) (model.Event, bool) {
	var ev model.Event

	id, ok := asInt64(m["event_id"])
	if !ok {
		return ev, false
	}
	name, ok := asString(m["event_name"])
	if !ok || name == "" {
		return ev, false
	}

	ev.EventID = id
	ev.Name = name
	ev.URLKey, _ = asString(m["event_url_key"])
	ev.StartedAt, _ = asInt64(m["started_at"])
	ev.EndedAt, _ = asInt64(m["ended_at"])
	ev.IsClosed, _ = asBool(m["is_closed"])
	ev.IsEventBlock, _ = asBool(m["is_event_block"])

	// show_ranking缺失时按可展示处理，只有明确false才过滤
	if v, ok := asBool(m["show_ranking"]); ok {
		ev.ShowRanking = v
	} else {
		ev.ShowRanking = true
	}
	return ev, true
}
