package interfaces

import (
	"context"

	"ShowroomSync/internal/model"
)

// Upstream service层消费的上游适配器接口。网络失败一律以error返回，
// "响应正常但不含可用数据"以空值/nil表达，由调用方按可恢复缺失处理
type Upstream interface {
	FetchEvents(ctx context.Context, status model.EventStatus, pageBudget int) ([]model.Event, error)       // 分页拉取活动列表
	ResolveRanking(ctx context.Context, urlKey string, eventID int64, maxPages int) ([]model.RankingRecord, error) // 候选接口探测+分页拉取排名
	FetchRoomStatus(ctx context.Context, roomID int64) (*model.RoomSnapshot, error)                          // 单ルーム瞬时状态（nil,nil=无可用快照）
	FetchOnlives(ctx context.Context) (model.LiveIndex, error)                                               // 直播中ルーム索引
	FetchGiftCatalog(ctx context.Context, roomID int64) (model.GiftCatalog, error)                           // 礼物目录
	FetchGiftLog(ctx context.Context, roomID int64) ([]model.GiftLogEntry, error)                            // 礼物投递记录
}
