package showroom

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRanking_CandidateOrderSensitivity(t *testing.T) {
	// 候选1有数据但不含room_id，候选2才带room_id：必须采用候选2的结果
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/ranking", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"ranking":[{"room_name":"A","rank":1,"point":100}]}`)
			return
		}
		fmt.Fprint(w, `{"ranking":[]}`)
	})
	mux.HandleFunc("/api/event/room_ranking", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"ranking":[{"room_id":1,"room_name":"A","rank":1,"point":100},{"room_id":2,"room_name":"B","rank":2,"point":80}]}`)
			return
		}
		fmt.Fprint(w, `{"ranking":[]}`)
	})
	c := newTestClient(t, mux)

	records, err := c.ResolveRanking(context.Background(), "key", 42, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].HasRoomID)
	assert.Equal(t, int64(1), records[0].RoomID)
	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, int64(100), records[0].Point)
	assert.Equal(t, int64(2), records[1].RoomID)
}

func TestResolveRanking_NotFoundSkipsCandidate(t *testing.T) {
	// 前两个候选404，第三个（url_key形式）命中
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/myevent/ranking", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `[{"room_id":7,"user_name":"C","rank":1,"point":50}]`)
			return
		}
		fmt.Fprint(w, `[]`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	c := newTestClient(t, mux)

	records, err := c.ResolveRanking(context.Background(), "myevent", 42, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].RoomID)
	// room_name缺失时退回user_name
	assert.Equal(t, "C", records[0].Name)
}

func TestResolveRanking_PaginationAccumulates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/ranking", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"ranking":[{"room_id":1,"room_name":"A","rank":1,"point":300}]}`)
		case "2":
			fmt.Fprint(w, `{"ranking":[{"room_id":2,"room_name":"B","rank":2,"point":200}]}`)
		default:
			fmt.Fprint(w, `{"ranking":[]}`)
		}
	})
	c := newTestClient(t, mux)

	records, err := c.ResolveRanking(context.Background(), "key", 42, 10)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestResolveRanking_AllCandidatesUnusable(t *testing.T) {
	// 所有候选都只返回不带room_id的条目
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, `{"ranking":[{"room_name":"A"}]}`)
			return
		}
		fmt.Fprint(w, `{"ranking":[]}`)
	})
	c := newTestClient(t, mux)

	_, err := c.ResolveRanking(context.Background(), "key", 42, 10)
	assert.ErrorIs(t, err, ErrNoUsableCandidate)
}

func TestResolveRanking_MaxPagesRespected(t *testing.T) {
	pages := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/event/ranking", func(w http.ResponseWriter, r *http.Request) {
		pages++
		fmt.Fprint(w, `{"ranking":[{"room_id":1,"room_name":"A","rank":1,"point":1}]}`)
	})
	c := newTestClient(t, mux)

	records, err := c.ResolveRanking(context.Background(), "key", 42, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, pages)
	assert.Len(t, records, 3)
}
