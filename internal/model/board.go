package model

import "time"

// RankedComparisonRow 对比视图的一行，每轮刷新从RoomMap+RoomSnapshot现算，从不存储。
// UpperGap/LowerGap 相对于"选中的行集合"计算：最上位行无UpperGap，
// 选中集合内最下位行无LowerGap（均为null）
type RankedComparisonRow struct {
	RoomID        int64  `json:"room_id"`
	Name          string `json:"room_name"`
	Rank          int    `json:"rank"`
	Point         int64  `json:"point"`
	PointPending  bool   `json:"point_pending"`
	UpperGap      *int64 `json:"upper_gap"`
	LowerGap      *int64 `json:"lower_gap"`
	IsLive        bool   `json:"is_live"`
	RemainingTime int64  `json:"remaining_time_seconds"`
}

// Board 一轮刷新的完整产物。Finalized=false 表示活动结束后点数仍在集計，
// 本轮不含数值gap
type Board struct {
	EventID     int64                 `json:"event_id"`
	Rows        []RankedComparisonRow `json:"rows"`
	Finalized   bool                  `json:"finalized"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}
