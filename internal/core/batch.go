package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/GuidelineFetch/internal/download"
	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

// GuidelineResolver 标题到候选结果的解析接口
type GuidelineResolver interface {
	Resolve(title string) models.Candidate
}

// FileDownloader URL到本地文件的下载接口
type FileDownloader interface {
	Download(pdfURL string, savePath string) bool
}

// BatchRunner 批处理执行器
// 逐条处理指南列表: 解析 → 下载 → 更新记录 → 持久化检查点。
// 崩溃安全粒度为单条记录,检查点和输出文件在每条记录后整体重写。
type BatchRunner struct {
	config     *Config
	resolver   GuidelineResolver
	downloader FileDownloader
}

// NewBatchRunner 创建批处理执行器
func NewBatchRunner(config *Config) *BatchRunner {
	return &BatchRunner{
		config:     config,
		resolver:   NewResolver(config.Crawl),
		downloader: download.NewDownloader(config.Download),
	}
}

// Run 执行批处理
// 已在检查点中到达终态的标题整条跳过,不产生任何网络或浏览器活动。
func (br *BatchRunner) Run() (*models.RunReport, error) {
	checkpoint, err := models.LoadCheckpointFromFile(br.config.Paths.CheckpointFile)
	if err != nil {
		return nil, fmt.Errorf("加载检查点失败: %w", err)
	}

	records, err := br.loadRecords()
	if err != nil {
		return nil, err
	}

	utils.Infof("🚀 开始批处理: %d条指南", len(records))

	report := models.NewRunReport(len(records), br.config.Paths.OutputRoot, br.config.Crawl)
	bar := utils.NewProgressBar(len(records), "处理指南列表")

	for i, record := range records {
		if checkpoint.Contains(record.Title) {
			utils.Infof("跳过已处理的标题: %s", record.Title)
			report.Skipped++
			_ = bar.Add(1)
			continue
		}

		utils.Infof("\n==================== [%d/%d] ====================", i+1, len(records))
		utils.Infof("指南标题: %s", record.Title)

		if ok, reason := utils.CheckSystemResources(); !ok {
			utils.Warnf("系统资源紧张: %s", reason)
		}

		br.processRecord(record, checkpoint, report)

		// 每条记录后整体重写检查点和输出列表
		// 写盘失败只记录日志,不中断批处理(下一条会再次重写)
		if err := checkpoint.SaveToFile(br.config.Paths.CheckpointFile); err != nil {
			utils.Errorf("保存检查点失败: %v", err)
		}
		if err := models.SaveGuidelineList(br.config.Paths.OutputFile, records); err != nil {
			utils.Errorf("保存指南列表失败: %v", err)
		}

		_ = bar.Add(1)
	}

	report.Finalize()
	br.printSummary(report)

	reporter := utils.NewReporter(br.config.Paths.OutputRoot)
	if err := reporter.SaveRunReport(report); err != nil {
		utils.Warnf("生成运行报告失败: %v", err)
	}

	return report, nil
}

// loadRecords 加载指南列表
// 输出文件已存在时从输出文件恢复进度,否则读取输入文件。
func (br *BatchRunner) loadRecords() ([]*models.GuidelineRecord, error) {
	if _, err := os.Stat(br.config.Paths.OutputFile); err == nil {
		utils.Infof("从上次的输出文件恢复: %s", br.config.Paths.OutputFile)
		records, err := models.LoadGuidelineList(br.config.Paths.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("恢复输出文件失败: %w", err)
		}
		return records, nil
	}

	records, err := models.LoadGuidelineList(br.config.Paths.InputFile)
	if err != nil {
		return nil, fmt.Errorf("加载输入文件失败: %w", err)
	}
	return records, nil
}

// processRecord 处理单条记录: 解析、下载、更新状态
// 任何故障都降级为该记录的失败,不向上抛出。
func (br *BatchRunner) processRecord(record *models.GuidelineRecord, checkpoint *models.Checkpoint, report *models.RunReport) {
	candidate := br.resolver.Resolve(record.Title)

	folderPath := filepath.Join(br.config.Paths.OutputRoot, models.FolderName(record.Title))
	saved := false

	if candidate.Resolved() {
		saved = br.downloadToFolder(record.Title, candidate.PDFURL, folderPath)
	} else {
		utils.Warnf("所有数据源都未解析到PDF: %s", record.Title)
	}

	record.PDFSaved = saved
	record.PDFLink = candidate.PDFURL

	if !saved {
		// 失败的记录不留下空目录
		if _, err := os.Stat(folderPath); err == nil {
			if err := os.RemoveAll(folderPath); err != nil {
				utils.Warnf("删除空目录失败 [%s]: %v", folderPath, err)
			}
		}
	}

	if saved {
		checkpoint.MarkCompleted(record.Title)
		report.Succeeded++
		if candidate.Category != "" {
			utils.Infof("✅ 处理成功: %s (分类: %s)", record.Title, candidate.Category)
		} else {
			utils.Infof("✅ 处理成功: %s", record.Title)
		}
	} else {
		checkpoint.MarkFailed(record.Title)
		report.Failed++
		report.FailedTitles = append(report.FailedTitles, record.Title)
		utils.Errorf("❌ 处理失败: %s", record.Title)
	}
}

// downloadToFolder 创建标题目录并下载PDF
func (br *BatchRunner) downloadToFolder(title string, pdfURL string, folderPath string) bool {
	if err := models.ValidateURL(pdfURL); err != nil {
		utils.Errorf("解析到的PDF链接无效 [%s]: %v", pdfURL, err)
		return false
	}

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		utils.Errorf("创建输出目录失败 [%s]: %v", folderPath, err)
		return false
	}

	savePath := filepath.Join(folderPath, models.FolderName(title)+".pdf")
	return br.downloader.Download(pdfURL, savePath)
}

// printSummary 打印批处理摘要
func (br *BatchRunner) printSummary(report *models.RunReport) {
	utils.Info("\n==================================================")
	utils.Info("📊 批处理摘要")
	utils.Info("==================================================")
	utils.Infof("指南总数: %d", report.TotalRecords)
	utils.Infof("✅ 成功: %d", report.Succeeded)
	utils.Infof("❌ 失败: %d", report.Failed)
	utils.Infof("⏭️  跳过(检查点): %d", report.Skipped)
	utils.Infof("⏱️  总耗时: %.2f秒", report.Duration)
	utils.Info("==================================================")

	// 显示失败的标题
	if report.Failed > 0 {
		utils.Warn("\n失败的标题:")
		for _, title := range report.FailedTitles {
			utils.Warnf("  - %s", title)
		}
	}
}
