package core

import (
	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/sources"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

// Resolver 数据源解析协调器
// 每个标题独占一个浏览器会话,按固定优先级执行策略,
// 命中第一个PDF链接即停止,会话无论成败都在返回前关闭。
type Resolver struct {
	factory    sources.Factory
	strategies []sources.Strategy
}

// NewResolver 创建解析器
func NewResolver(config models.CrawlConfig) *Resolver {
	return &Resolver{
		factory: func() (sources.Session, error) {
			return sources.NewRodSession(config)
		},
		strategies: []sources.Strategy{
			sources.PortalSearch{},
			sources.TripDatabaseSearch{},
			sources.WebSearch{},
		},
	}
}

// Resolve 解析单个标题
// 返回候选结果;所有策略都未命中时PDFURL为空。
// 分类标签来自检索库策略,即使PDF最终由后续策略命中也保留。
func (r *Resolver) Resolve(title string) models.Candidate {
	session, err := r.factory()
	if err != nil {
		utils.Errorf("创建浏览器会话失败 [%s]: %v", title, err)
		return models.Candidate{}
	}
	defer session.Close()

	var category string
	for _, strategy := range r.strategies {
		candidate := r.tryStrategy(strategy, session, title)

		if category == "" && candidate.Category != "" {
			category = candidate.Category
		}

		if candidate.Resolved() {
			utils.Infof("✅ 策略命中 [%s]: %s", strategy.Name(), candidate.PDFURL)
			candidate.Category = category
			return candidate
		}

		utils.Debugf("策略未命中 [%s]: %s", strategy.Name(), title)
	}

	return models.Candidate{Category: category}
}

// tryStrategy 在策略边界捕获panic,降级为未解析
// 单个标题在某个策略上的故障不允许中断批处理和其他策略。
func (r *Resolver) tryStrategy(strategy sources.Strategy, session sources.Session, title string) (candidate models.Candidate) {
	defer func() {
		if rec := recover(); rec != nil {
			utils.Errorf("策略panic [%s] [%s]: %v", strategy.Name(), title, rec)
			candidate = models.Candidate{}
		}
	}()

	return strategy.Try(session, title)
}
