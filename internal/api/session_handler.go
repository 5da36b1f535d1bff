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

// SessionHandler 观战会话接口：创建/看板/礼物历史/删除
type SessionHandler struct {
	catalog  *service.CatalogService
	roomMaps *service.RoomMapService
	refresh  *service.RefreshService
	gifts    *service.GiftService
	sessions *service.SessionStore
	logger   *logrus.Logger
}

// NewSessionHandler 创建SessionHandler
func NewSessionHandler(
	catalog *service.CatalogService,
	roomMaps *service.RoomMapService,
	refresh *service.RefreshService,
	gifts *service.GiftService,
	sessions *service.SessionStore,
	logger *logrus.Logger,
) *SessionHandler {
	return &SessionHandler{
		catalog:  catalog,
		roomMaps: roomMaps,
		refresh:  refresh,
		gifts:    gifts,
		sessions: sessions,
		logger:   logger,
	}
}

// createSessionRequest 创建会话请求体。room_ids为空时默认选排名前10位
type createSessionRequest struct {
	EventID int64   `json:"event_id" binding:"required"`
	RoomIDs []int64 `json:"room_ids"`
}

// CreateSession 创建观战会话
// POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.catalog.EventByID(c.Request.Context(), req.EventID)
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
		if errors.Is(err, showroom.ErrNoUsableCandidate) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "无法确定该活动的参赛ルーム（候选接口均不可用）"})
			return
		}
		h.logger.WithError(err).Error("ResolveRoomMap failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	sess := h.sessions.Create(*event, roomMap, req.RoomIDs)
	h.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"event_id":   event.EventID,
		"rooms":      len(sess.Selection),
	}).Info("会话创建成功")

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"event":      sess.Event,
		"selection":  sess.Selection,
	})
}

// GetBoard 最近一轮看板；会话从未刷新过时先同步刷新一轮
// GET /api/sessions/:session_id/board
func (h *SessionHandler) GetBoard(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	board := sess.Board()
	if board == nil {
		var err error
		board, err = h.refresh.Refresh(c.Request.Context(), sess)
		if err != nil {
			h.logger.WithError(err).Error("Refresh failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, board)
}

// ForceRefresh 立即执行一轮刷新并返回新看板
// POST /api/sessions/:session_id/refresh
func (h *SessionHandler) ForceRefresh(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}

	board, err := h.refresh.Refresh(c.Request.Context(), sess)
	if err != nil {
		h.logger.WithError(err).Error("Refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, board)
}

// GetGifts 抓取并合并指定ルーム的礼物历史
// GET /api/sessions/:session_id/gifts/:room_id
func (h *SessionHandler) GetGifts(c *gin.Context) {
	sess, ok := h.lookupSession(c)
	if !ok {
		return
	}
	roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id必须为数字"})
		return
	}

	history, err := h.gifts.RefreshHistory(c.Request.Context(), sess, roomID)
	if err != nil {
		h.logger.WithError(err).Error("RefreshHistory failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "gift_log": history})
}

// DeleteSession 删除会话，释放其内存状态
// DELETE /api/sessions/:session_id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	h.sessions.Delete(sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "会话已删除"})
}

// lookupSession 取路径参数中的会话，不存在时直接写404响应
func (h *SessionHandler) lookupSession(c *gin.Context) (*service.Session, bool) {
	sess, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在"})
		return nil, false
	}
	return sess, true
}
