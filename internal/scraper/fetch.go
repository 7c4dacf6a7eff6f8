package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"PremierSync/internal/config"
	"PremierSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Fetcher 页面抓取器，持有一个采集专用HTTP客户端
type Fetcher struct {
	client *http.Client
	logger *logrus.Logger
}

// NewFetcher 创建Fetcher
func NewFetcher(cfg *config.ScrapeConfig, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: httpclient.NewHTTPClient(cfg, logger),
		logger: logger,
	}
}

// FetchPage 抓取页面原始HTML。网络错误或非2xx状态码即传输失败，
// 调用方应中止该数据类型的管道
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w, url: %s", err, pageURL)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求页面失败: %w, url: %s", err, pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("页面返回异常状态码: %d, url: %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取响应失败: %w, url: %s", err, pageURL)
	}
	return string(body), nil
}
