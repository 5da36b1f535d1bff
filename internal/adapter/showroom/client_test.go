package showroom

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ShowroomSync/internal/config"

	"github.com/sirupsen/logrus"
)

// newTestClient 用httptest服务器构建适配器实例
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.UpstreamConfig{
		BaseURL:   srv.URL,
		UserAgent: "test-agent",
		Timeout:   5,
	}
	return NewClient(cfg, logger)
}
