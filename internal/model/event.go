package model

// EventStatus 活动状态枚举（开催中/已结束）
type EventStatus string

const (
	EventStatusOngoing EventStatus = "ongoing"
	EventStatusEnded   EventStatus = "ended"
)

// EndedNameMarker 已结束活动在合并列表中的名称前缀，避免与开催中活动混淆
const EndedNameMarker = "【終了】"

// Event SHOWROOM活动。event_id 为唯一标识，会话内不可变，目录刷新时整体重建
type Event struct {
	EventID      int64  `json:"event_id"`
	URLKey       string `json:"event_url_key"`
	Name         string `json:"event_name"`
	StartedAt    int64  `json:"started_at"`
	EndedAt      int64  `json:"ended_at"`
	IsClosed     bool   `json:"is_closed"`
	ShowRanking  bool   `json:"show_ranking"`
	IsEventBlock bool   `json:"is_event_block"`
}

// Listable 该活动是否应出现在对上层展示的目录中
func (e *Event) Listable() bool {
	return e.ShowRanking && !e.IsEventBlock
}
