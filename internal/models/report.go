package models

import (
	"encoding/json"
	"time"
)

// RunReport 批处理运行报告
type RunReport struct {
	// 运行信息
	RunID      string `json:"run_id"`
	OutputRoot string `json:"output_root"`

	// 时间信息
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // 秒

	// 统计信息
	TotalRecords int `json:"total_records"` // 指南总数
	Succeeded    int `json:"succeeded"`     // 本次运行成功数
	Failed       int `json:"failed"`        // 本次运行失败数
	Skipped      int `json:"skipped"`       // 检查点跳过数

	// 失败明细
	FailedTitles []string `json:"failed_titles"`

	// 配置快照
	Config CrawlConfig `json:"config"`
}

// NewRunReport 创建运行报告
func NewRunReport(total int, outputRoot string, config CrawlConfig) *RunReport {
	return &RunReport{
		RunID:        generateID(),
		OutputRoot:   outputRoot,
		StartTime:    time.Now(),
		TotalRecords: total,
		FailedTitles: make([]string, 0),
		Config:       config,
	}
}

// Finalize 结束计时
func (r *RunReport) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime).Seconds()
}

// ToJSON 序列化为JSON
func (r *RunReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON 从JSON反序列化
func (r *RunReport) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}
