package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/GuidelineFetch/internal/download"
	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/spf13/viper"
)

// Config 应用程序配置
type Config struct {
	Paths    PathsConfig        `mapstructure:"paths"`
	Crawl    models.CrawlConfig `mapstructure:"crawl"`
	Download download.Config    `mapstructure:"download"`
	Logging  LoggingConfig      `mapstructure:"logging"`
}

// PathsConfig 输入输出路径配置
type PathsConfig struct {
	InputFile      string `mapstructure:"input_file"`      // 指南列表输入文件
	OutputFile     string `mapstructure:"output_file"`     // 处理结果输出文件
	OutputRoot     string `mapstructure:"output_root"`     // PDF输出根目录
	CheckpointFile string `mapstructure:"checkpoint_file"` // 检查点文件
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configPath != "" {
		// 使用指定的配置文件
		v.SetConfigFile(configPath)
	} else {
		// 搜索默认位置
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 添加配置搜索路径
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")

		// 用户主目录
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".guidelinefetch"))
		}
	}

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果配置文件不存在,使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// 路径配置默认值
	v.SetDefault("paths.input_file", "final_guidelines_v6.json")
	v.SetDefault("paths.output_file", "final_guidelines_v7.json")
	v.SetDefault("paths.output_root", "guidelines_database")
	v.SetDefault("paths.checkpoint_file", "checkpoint.json")

	// 浏览器解析配置默认值
	v.SetDefault("crawl.wait_time", 5)
	v.SetDefault("crawl.element_timeout", 10)
	v.SetDefault("crawl.headless", true)

	// 下载配置默认值
	v.SetDefault("download.timeout", download.DefaultTimeout)
	v.SetDefault("download.user_agent", download.DefaultUserAgent)

	// 日志配置默认值
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)
}

// MergeCLIFlags 合并命令行参数到配置
// headlessSet标记--headless是否在命令行上显式指定,
// 未指定时不覆盖配置文件的值(布尔标志无法靠默认值区分)。
func (c *Config) MergeCLIFlags(
	inputFile string,
	outputFile string,
	outputRoot string,
	checkpointFile string,
	waitTime int,
	elementTimeout int,
	headless bool,
	headlessSet bool,
) {
	// 命令行参数优先于配置文件
	if inputFile != "" {
		c.Paths.InputFile = inputFile
	}
	if outputFile != "" {
		c.Paths.OutputFile = outputFile
	}
	if outputRoot != "" {
		c.Paths.OutputRoot = outputRoot
	}
	if checkpointFile != "" {
		c.Paths.CheckpointFile = checkpointFile
	}
	if waitTime >= 0 {
		c.Crawl.WaitTime = waitTime
	}
	if elementTimeout > 0 {
		c.Crawl.ElementTimeout = elementTimeout
	}
	if headlessSet {
		c.Crawl.Headless = headless
	}
}
