package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RecoveryAshes/GuidelineFetch/internal/core"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile string
	verbose    bool
	logLevel   string

	// 路径参数
	inputFile      string
	outputFile     string
	outputRoot     string
	checkpointFile string

	// 解析参数
	waitTime        int
	elementTimeout  int
	downloadTimeout int
	headless        bool
)

var rootCmd = &cobra.Command{
	Use:   "guidelinefetch",
	Short: "临床指南PDF批量抓取工具",
	Long: `GuidelineFetch - 临床指南PDF批量抓取工具 (Go版本)

按标题列表自动抓取临床指南PDF,支持:
  • 三级数据源链: EBM Portal → Trip Database → Google检索
  • 浏览器驱动的PDF链接提取
  • 直接下载 + 流式HTTP回退双通道
  • 检查点断点续传,单条记录粒度崩溃安全
  • 输入列表未知字段原样透传

使用示例:
  # 使用默认路径处理指南列表
  guidelinefetch

  # 指定输入输出
  guidelinefetch -i guidelines.json -o guidelines_updated.json -d pdf_output

  # 重新处理失败项: 删除或编辑checkpoint.json后重新运行

版本: ` + Version + `
构建时间: ` + BuildTime,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 加载配置
		config, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		// 初始化日志系统
		logConfig := utils.LogConfig{
			Level:      config.Logging.Level,
			LogDir:     config.Logging.LogDir,
			MaxSize:    config.Logging.Rotation.MaxSize,
			MaxBackups: config.Logging.Rotation.MaxBackups,
			MaxAge:     config.Logging.Rotation.MaxAge,
			Compress:   config.Logging.Rotation.Compress,
		}

		// 命令行参数覆盖配置文件
		if logLevel != "" {
			logConfig.Level = logLevel
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("初始化日志系统失败: %w", err)
		}

		if verbose {
			utils.Info("详细模式已启用")
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// 设置信号处理(Ctrl+C优雅退出)
		// 检查点在每条记录后落盘,中断后重新运行即可续传
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-sigChan
			utils.Warnf("\n收到中断信号: %v, 进度已保存在检查点中,重新运行可续传", sig)
			os.Exit(0)
		}()

		// 加载配置并合并命令行参数
		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		appConfig.MergeCLIFlags(
			inputFile,
			outputFile,
			outputRoot,
			checkpointFile,
			waitTime,
			elementTimeout,
			headless,
			cmd.Flags().Changed("headless"),
		)
		if downloadTimeout > 0 {
			appConfig.Download.Timeout = downloadTimeout
		}

		// 验证参数
		if err := ValidateFlags(appConfig); err != nil {
			return err
		}

		// 执行批处理
		runner := core.NewBatchRunner(appConfig)
		report, err := runner.Run()
		if err != nil {
			return fmt.Errorf("批处理失败: %w", err)
		}

		if report.Failed > 0 {
			utils.Warnf("⚠️  %d 条指南处理失败,详情见 %s 的 failed 列表", report.Failed, appConfig.Paths.CheckpointFile)
		}

		utils.Info("✨ 批处理任务完成!")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("GuidelineFetch %s\n", Version)
		fmt.Printf("构建时间: %s\n", BuildTime)
		fmt.Println("Go实现版本 - 临床指南PDF批量抓取工具")
	},
}

func init() {
	// 全局参数
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出模式")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别 (trace|debug|info|warn|error)")

	// 路径参数
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "指南列表输入文件(JSON)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "处理结果输出文件(JSON)")
	rootCmd.Flags().StringVarP(&outputRoot, "output-dir", "d", "", "PDF输出根目录")
	rootCmd.Flags().StringVar(&checkpointFile, "checkpoint", "", "检查点文件路径")

	// 解析参数
	rootCmd.Flags().IntVarP(&waitTime, "wait", "w", -1, "页面导航后等待时间(秒)")
	rootCmd.Flags().IntVar(&elementTimeout, "element-timeout", 0, "等待页面元素超时(秒)")
	rootCmd.Flags().IntVar(&downloadTimeout, "download-timeout", 0, "下载超时(秒)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "无头浏览器模式")

	// 添加子命令
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
