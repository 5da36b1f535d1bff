package showroom

import (
	"ShowroomSync/internal/model"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoUsableCandidate 所有候选排名接口均未返回带ルームID的条目。
// 与"候选接口可用但参赛者为零"（空结果、无错误）是两种不同结局，调用方须区分
var ErrNoUsableCandidate = errors.New("showroom: 没有候选排名接口返回可识别的条目")

// rankingCandidates 候选排名接口模板，按room_id出现概率排序，先命中先用
var rankingCandidates = []string{
	"/api/event/ranking?event_id={event_id}&page={page}",
	"/api/event/room_ranking?event_id={event_id}&page={page}",
	"/api/event/{event_url_key}/ranking?page={page}",
	"/api/event/rank_list?event_id={event_id}&page={page}",
}

// pageOutcome 单页拉取的显式结局，分页终止与传输失败在类型上分开
type pageOutcome int

const (
	pageMore      pageOutcome = iota // 本页有数据，继续翻页
	pageExhausted                    // 空页或404，正常终止
	pageFailed                       // 传输/解码失败，本页作废但之前的页保留
)

// ResolveRanking 依次尝试候选接口，返回第一个产出可识别条目的候选的全部累计记录。
// 候选内逐页拉取，累计结果中至少一条带ルームID才算候选成立；
// 全部候选失败时返回ErrNoUsableCandidate
func (c *Client) ResolveRanking(ctx context.Context, urlKey string, eventID int64, maxPages int) ([]model.RankingRecord, error) {
	for _, tmpl := range rankingCandidates {
		var records []model.RankingRecord

		for page := 1; page <= maxPages; page++ {
			url := c.buildRankingURL(tmpl, urlKey, eventID, page)
			entries, outcome := c.fetchRankingPage(ctx, url)
			if outcome != pageMore {
				break
			}
			records = append(records, entries...)
		}

		if hasRoomID(records) {
			c.logger.WithFields(logrus.Fields{
				"template": tmpl,
				"entries":  len(records),
			}).Info("排名候选接口命中")
			return records, nil
		}
		c.logger.WithField("template", tmpl).Warn("该候选接口的条目不含ルームID，尝试下一个候选")
	}
	return nil, ErrNoUsableCandidate
}

// buildRankingURL 填充候选模板的占位符
func (c *Client) buildRankingURL(tmpl, urlKey string, eventID int64, page int) string {
	r := strings.NewReplacer(
		"{event_id}", strconv.FormatInt(eventID, 10),
		"{event_url_key}", urlKey,
		"{page}", strconv.Itoa(page),
	)
	return c.cfg.BaseURL + r.Replace(tmpl)
}

// fetchRankingPage 拉取并解析一页排名
func (c *Client) fetchRankingPage(ctx context.Context, url string) ([]model.RankingRecord, pageOutcome) {
	body, err := c.getJSON(ctx, url)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pageExhausted
		}
		c.logger.WithError(err).WithField("url", url).Warn("排名分页请求失败")
		return nil, pageFailed
	}

	// 顶层形态：{ranking:[...]} / {event_list:[...]} / 裸数组
	list, ok := extractList(body, "ranking", "event_list")
	if !ok || len(list) == 0 {
		return nil, pageExhausted
	}

	records := make([]model.RankingRecord, 0, len(list))
	for _, item := range list {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		records = append(records, parseRankingRecord(m))
	}
	return records, pageMore
}

// parseRankingRecord 解析单条排名记录。字段缺失不在此处过滤，
// 候选成立性与RoomMap归并由上层分别判断
func parseRankingRecord(m map[string]any) model.RankingRecord {
	var rec model.RankingRecord
	if id, ok := asInt64(m["room_id"]); ok {
		rec.RoomID = id
		rec.HasRoomID = true
	}
	// 展示名：room_name优先，退回user_name
	if name, ok := asString(m["room_name"]); ok && name != "" {
		rec.Name = name
	} else if name, ok := asString(m["user_name"]); ok {
		rec.Name = name
	}
	if rank, ok := asInt64(m["rank"]); ok {
		rec.Rank = int(rank)
	}
	rec.Point, _ = asInt64(m["point"])
	return rec
}

// hasRoomID 累计条目中是否至少一条带ルームID
func hasRoomID(records []model.RankingRecord) bool {
	for _, r := range records {
		if r.HasRoomID {
			return true
		}
	}
	return false
}
