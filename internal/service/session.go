package service

import (
	"errors"
	"sort"
	"sync"

	"ShowroomSync/internal/model"

	"github.com/google/uuid"
)

// ErrSessionNotFound 会话不存在或已被删除
var ErrSessionNotFound = errors.New("service: 会话不存在")

// DefaultSelectionSize 未指定选择时默认取排名前几位
const DefaultSelectionSize = 10

// Session 显式的会话状态对象：活动、参赛表、用户选择、礼物历史、最近一轮看板。
// 核心操作不持有进程级可变状态，全部状态经由该对象按引用传入
type Session struct {
	ID        string
	Event     model.Event
	RoomMap   model.RoomMap
	Selection []int64

	nameByID map[int64]string

	mu        sync.RWMutex
	histories map[int64][]model.GiftLogEntry
	board     *model.Board
}

func newSession(event model.Event, roomMap model.RoomMap, selection []int64) *Session {
	nameByID := make(map[int64]string, len(roomMap))
	for name, entry := range roomMap {
		nameByID[entry.RoomID] = name
	}
	return &Session{
		ID:        uuid.NewString(),
		Event:     event,
		RoomMap:   roomMap,
		Selection: selection,
		nameByID:  nameByID,
		histories: make(map[int64][]model.GiftLogEntry),
	}
}

// RoomName 按RoomID反查展示名
func (s *Session) RoomName(roomID int64) string {
	return s.nameByID[roomID]
}

// MergeGifts 把新抓取的礼物记录合并进该ルーム的历史，返回合并后的完整历史（副本）
func (s *Session) MergeGifts(roomID int64, fresh []model.GiftLogEntry) []model.GiftLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := MergeGifts(s.histories[roomID], fresh)
	s.histories[roomID] = merged
	return append([]model.GiftLogEntry(nil), merged...)
}

// GiftHistory 返回该ルーム当前历史的副本
func (s *Session) GiftHistory(roomID int64) []model.GiftLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.GiftLogEntry(nil), s.histories[roomID]...)
}

// SetBoard 存储最近一轮刷新的看板
func (s *Session) SetBoard(b *model.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = b
}

// Board 返回最近一轮看板，从未刷新过时为nil
func (s *Session) Board() *model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// SessionStore 会话的内存存储，uuid为键。进程重启即清空（不持久化）
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore 创建空会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create 创建会话。selection为空时默认取排名前DefaultSelectionSize位
func (st *SessionStore) Create(event model.Event, roomMap model.RoomMap, selection []int64) *Session {
	if len(selection) == 0 {
		selection = TopRooms(roomMap, DefaultSelectionSize)
	}
	sess := newSession(event, roomMap, selection)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID] = sess
	return sess
}

// Get 按ID取会话
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete 删除会话
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// All 当前全部活动会话（定时刷新用）
func (st *SessionStore) All() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	return out
}

// TopRooms 按rank升序取前n位的RoomID（rank为0视为未排名，排最后）
func TopRooms(rm model.RoomMap, n int) []int64 {
	entries := make([]model.RoomEntry, 0, len(rm))
	for _, e := range rm {
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Rank, entries[j].Rank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})

	if n > len(entries) {
		n = len(entries)
	}
	ids := make([]int64, 0, n)
	for _, e := range entries[:n] {
		ids = append(ids, e.RoomID)
	}
	return ids
}
