package api

import (
	"errors"
	"net/http"
	"strconv"

	"ShowroomSync/internal/adapter/showroom"
	"ShowroomSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler 活动目录与直播索引查询接口（提供给展示层）
type CatalogHandler struct {
	catalog  *service.CatalogService
	roomMaps *service.RoomMapService
	refresh  *service.RefreshService
	logger   *logrus.Logger
}

// NewCatalogHandler 创建CatalogHandler
func NewCatalogHandler(catalog *service.CatalogService, roomMaps *service.RoomMapService, refresh *service.RefreshService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		roomMaps: roomMaps,
		refresh:  refresh,
		logger:   logger,
	}
}

// ListEvents 活动目录（开催中+已结束，已过滤不可展示条目）
// GET /api/events
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	events, err := h.catalog.ListEvents(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("ListEvents failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ListEventRooms 指定活动的参赛ルーム表
// GET /api/events/:event_id/rooms
func (h *CatalogHandler) ListEventRooms(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_id必须为数字"})
		return
	}

	event, err := h.catalog.EventByID(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "活动不存在"})
			return
		}
		h.logger.WithError(err).Error("EventByID failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	roomMap, err := h.roomMaps.ResolveRoomMap(c.Request.Context(), event)
	if err != nil {
		// 候选接口全部不可用≠参赛者为零：前者按上游故障上报
		if errors.Is(err, showroom.ErrNoUsableCandidate) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "无法确定该活动的参赛ルーム（候选接口均不可用）"})
			return
		}
		h.logger.WithError(err).Error("ResolveRoomMap failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "rooms": roomMap})
}

// ListLive 当前直播中ルーム索引
// GET /api/live
func (h *CatalogHandler) ListLive(c *gin.Context) {
	live, err := h.refresh.LiveIndex(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("LiveIndex failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lives": live})
}
