package model

// GiftLogEntry 一条礼物投递记录。point缺失时通过礼物目录补齐
type GiftLogEntry struct {
	GiftID    int64 `json:"gift_id"`
	CreatedAt int64 `json:"created_at"`
	Num       int   `json:"num"`
	Point     int64 `json:"point"`
}

// GiftKey 去重键：三个字段全部相同即视为同一事件（跨重叠时间窗重复抓取也如此）
type GiftKey struct {
	GiftID    int64
	CreatedAt int64
	Num       int
}

// Key 返回该记录的去重键
func (e GiftLogEntry) Key() GiftKey {
	return GiftKey{GiftID: e.GiftID, CreatedAt: e.CreatedAt, Num: e.Num}
}

// GiftCatalog 礼物目录：gift_id → 单个点数
type GiftCatalog map[int64]int64
