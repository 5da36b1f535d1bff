package model

// RoomEntry RoomMap的值：某活动内一个参赛ルーム的标识与当前排名
type RoomEntry struct {
	RoomID int64 `json:"room_id"`
	Rank   int   `json:"rank"`
	Point  int64 `json:"point"`
}

// RoomMap 活动参赛ルーム表，键为展示名。上游不保证展示名唯一，
// 重名时后写覆盖（选择操作以RoomID为准，展示名仅用于显示）
type RoomMap map[string]RoomEntry

// RankingRecord 排名接口返回的单条原始记录。
// HasRoomID 用于区分"字段缺失"和"值为零"——候选接口是否可用取决于它
type RankingRecord struct {
	RoomID    int64
	HasRoomID bool
	Name      string
	Rank      int
	Point     int64
}

// RoomSnapshot 单个ルーム的瞬时状态，每轮刷新整体替换，从不落盘。
// PointPending 表示活动已结束但上游仍在集計，point尚不可比较
type RoomSnapshot struct {
	RoomID        int64 `json:"room_id"`
	Rank          int   `json:"rank"`
	Point         int64 `json:"point"`
	PointPending  bool  `json:"point_pending"`
	RemainingTime int64 `json:"remaining_time_seconds"`
	// 上游在部分payload里直接给出的下位信息，有则透传
	LowerRank int   `json:"lower_rank,omitempty"`
	LowerGap  int64 `json:"lower_gap,omitempty"`
}

// LiveStatusEntry 在该索引中出现即表示"正在直播"
type LiveStatusEntry struct {
	RoomID          int64 `json:"room_id"`
	StartedAt       int64 `json:"started_at"`
	PremiumRoomType int   `json:"premium_room_type"`
}

// LiveIndex 当前直播中ルーム索引，每次成功刷新整体替换，不做增量合并
type LiveIndex map[int64]LiveStatusEntry
