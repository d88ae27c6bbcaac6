package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// StaticSource 静态JSON后端：按频道拉取只读FAQ文档
//
// 文档地址为 <baseURL><channelID>.json，内容是
// [{"trigger": ..., "question": ..., "answer": ...}] 数组。
type StaticSource struct {
	baseURL string
	client  *http.Client
}

// StaticEntry 静态FAQ条目
type StaticEntry struct {
	Trigger  string `json:"trigger"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewStaticSource 创建静态JSON后端
func NewStaticSource(baseURL string, client *http.Client) *StaticSource {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &StaticSource{baseURL: baseURL, client: client}
}

// Resolve 按触发词在频道文档内精确匹配
func (s *StaticSource) Resolve(ctx context.Context, channelID, trigger string) (*Resolution, error) {
	entries, err := s.fetch(ctx, channelID)
	if err != nil {
		return nil, err
	}
	trigger = strings.TrimSpace(trigger)
	for _, e := range entries {
		if e.Trigger == trigger {
			return resolutionFor(e.Question, e.Answer), nil
		}
	}
	return &Resolution{Outcome: OutcomeTriggerNotFound}, nil
}

// Options 列出频道文档内的全部条目
func (s *StaticSource) Options(ctx context.Context, channelID string) ([]Option, error) {
	entries, err := s.fetch(ctx, channelID)
	if err != nil {
		return nil, err
	}
	options := make([]Option, 0, len(entries))
	for _, e := range entries {
		options = append(options, Option{
			Value: e.Trigger,
			Label: TruncateLabel(e.Question),
		})
	}
	return options, nil
}

func (s *StaticSource) fetch(ctx context.Context, channelID string) ([]StaticEntry, error) {
	url := s.baseURL + channelID + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch FAQ document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// 频道没有FAQ文档等同于空文档
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	var entries []StaticEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode FAQ document: %w", err)
	}
	return entries, nil
}
