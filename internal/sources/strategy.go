package sources

import "github.com/RecoveryAshes/GuidelineFetch/internal/models"

// Strategy 数据源策略
// 把一个指南标题解析为候选结果,未命中返回零值Candidate。
// 实现必须吞掉导航和查找故障,绝不向调用方抛出。
type Strategy interface {
	// Name 策略名称(用于日志)
	Name() string

	// Try 在给定会话上解析标题
	Try(session Session, title string) models.Candidate
}
