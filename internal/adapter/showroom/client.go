package showroom

import (
	"ShowroomSync/internal/config"
	"ShowroomSync/internal/utils/httpclient"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrNotFound 上游返回404。分页/候选探测中作为"此路不通"信号，不是硬错误
var ErrNotFound = errors.New("upstream: not found")

// Client SHOWROOM平台适配器。所有请求走共享HTTP客户端（超时、代理、标识头统一配置）
type Client struct {
	cfg        *config.UpstreamConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient 创建适配器实例
func NewClient(cfg *config.UpstreamConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// getJSON 请求上游并解码JSON。数字保留为json.Number，由extract层按需转换
func (c *Client) getJSON(ctx context.Context, rawURL string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求上游失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("上游返回异常状态码: %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("解码上游响应失败: %w", err)
	}
	return body, nil
}
