package main

import (
	"fmt"

	"github.com/RecoveryAshes/GuidelineFetch/internal/core"
)

// ValidateFlags 验证合并后的运行配置
func ValidateFlags(config *core.Config) error {
	// 验证输入输出路径
	if config.Paths.InputFile == "" {
		return fmt.Errorf("输入文件路径不能为空")
	}
	if config.Paths.OutputFile == "" {
		return fmt.Errorf("输出文件路径不能为空")
	}
	if config.Paths.OutputRoot == "" {
		return fmt.Errorf("PDF输出根目录不能为空")
	}
	if config.Paths.CheckpointFile == "" {
		return fmt.Errorf("检查点文件路径不能为空")
	}

	// 验证浏览器解析参数
	if err := config.Crawl.Validate(); err != nil {
		return err
	}

	// 验证下载超时
	if config.Download.Timeout < 1 || config.Download.Timeout > 600 {
		return fmt.Errorf("下载超时必须在1-600秒之间,当前值: %d", config.Download.Timeout)
	}

	return nil
}
