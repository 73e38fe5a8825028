package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Reporter 报告生成器
type Reporter struct {
	outputRoot string
}

// NewReporter 创建报告生成器
func NewReporter(outputRoot string) *Reporter {
	return &Reporter{
		outputRoot: outputRoot,
	}
}

// SaveRunReport 保存运行报告到输出根目录
func (r *Reporter) SaveRunReport(report *models.RunReport) error {
	if err := os.MkdirAll(r.outputRoot, 0755); err != nil {
		return fmt.Errorf("创建输出根目录失败: %w", err)
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("序列化运行报告失败: %w", err)
	}

	reportPath := filepath.Join(r.outputRoot, "run_report.json")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("写入运行报告失败: %w", err)
	}

	Infof("✅ 运行报告已生成: %s", reportPath)
	return nil
}

// NewProgressBar 创建进度条
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
