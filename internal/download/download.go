package download

import (
	"compress/flate"
	"compress/gzip"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultUserAgent 回退下载使用的浏览器User-Agent
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

	// DefaultTimeout 下载超时(秒)
	DefaultTimeout = 30

	// downloadChunkSize 流式写盘的分块大小(8KB)
	downloadChunkSize = 8192
)

// Config 下载配置
type Config struct {
	Timeout   int               `json:"timeout" mapstructure:"timeout"`       // HTTP超时(秒) (默认:30)
	UserAgent string            `json:"user_agent" mapstructure:"user_agent"` // User-Agent头部
	Headers   map[string]string `json:"headers" mapstructure:"headers"`      // 附加HTTP头部
}

// DefaultConfig 默认下载配置
func DefaultConfig() Config {
	return Config{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Downloader PDF下载器
// 主通道为Colly整文件抓取,失败时回退到流式HTTP GET。
type Downloader struct {
	config Config
	client *http.Client
}

// NewDownloader 创建下载器
func NewDownloader(config Config) *Downloader {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	// Cookie jar按公共后缀列表隔离站点,部分PDF主机靠会话Cookie放行下载
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	client := &http.Client{
		Timeout: time.Duration(config.Timeout) * time.Second,
		Jar:     jar,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // 与浏览器端的证书跳过策略保持一致
			},
		},
	}

	return &Downloader{
		config: config,
		client: client,
	}
}

// Download 下载PDF到指定路径
// 任一通道成功写盘返回true;HTTP错误状态、传输层故障和其他
// 意外故障都转换为false并分别记录日志,不向调用方抛出。
func (d *Downloader) Download(pdfURL string, savePath string) bool {
	if err := d.directDownload(pdfURL, savePath); err == nil {
		utils.Infof("📥 直接下载成功: %s", savePath)
		return true
	} else {
		utils.Errorf("直接下载失败: %v", err)
		utils.Info("回退到流式HTTP下载...")
	}

	return d.streamDownload(pdfURL, savePath)
}

// directDownload 主通道: Colly整文件抓取
func (d *Downloader) directDownload(pdfURL string, savePath string) error {
	c := colly.NewCollector(
		colly.UserAgent(d.config.UserAgent),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(time.Duration(d.config.Timeout) * time.Second)

	var saveErr error
	saved := false
	c.OnResponse(func(r *colly.Response) {
		if err := r.Save(savePath); err != nil {
			saveErr = fmt.Errorf("写入文件失败: %w", err)
			return
		}
		saved = true
	})

	var requestErr error
	c.OnError(func(r *colly.Response, err error) {
		requestErr = err
	})

	if err := c.Visit(pdfURL); err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	if requestErr != nil {
		return fmt.Errorf("请求失败: %w", requestErr)
	}
	if saveErr != nil {
		return saveErr
	}
	if !saved {
		return fmt.Errorf("未收到响应内容")
	}

	return nil
}

// streamDownload 回退通道: 流式HTTP GET,分块写盘
func (d *Downloader) streamDownload(pdfURL string, savePath string) bool {
	req, err := http.NewRequest(http.MethodGet, pdfURL, nil)
	if err != nil {
		utils.Errorf("构造下载请求失败 [%s]: %v", pdfURL, err)
		return false
	}

	req.Header.Set("User-Agent", d.config.UserAgent)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	for name, value := range d.config.Headers {
		req.Header.Set(name, value)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		// 传输层故障(DNS、连接、超时)
		utils.Errorf("流式下载传输失败 [%s]: %v", pdfURL, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// HTTP错误状态
		utils.Errorf("流式下载HTTP错误 [%s]: HTTP %d", pdfURL, resp.StatusCode)
		return false
	}

	body, err := decompressBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		utils.Errorf("流式下载解压失败 [%s]: %v", pdfURL, err)
		return false
	}

	file, err := os.Create(savePath)
	if err != nil {
		// 意外故障(文件系统)
		utils.Errorf("创建文件失败 [%s]: %v", savePath, err)
		return false
	}
	defer file.Close()

	written, err := io.CopyBuffer(file, body, make([]byte, downloadChunkSize))
	if err != nil {
		utils.Errorf("写入文件失败 [%s]: %v", savePath, err)
		return false
	}

	utils.Infof("📥 流式下载成功: %s (%d bytes)", savePath, written)
	return true
}

// decompressBody 根据Content-Encoding头部包装解压读取器
// 支持 gzip, deflate, br (Brotli) 三种压缩格式
func decompressBody(contentEncoding string, body io.Reader) (io.Reader, error) {
	encoding := strings.ToLower(strings.TrimSpace(contentEncoding))

	switch encoding {
	case "gzip":
		reader, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		return reader, nil

	case "deflate":
		return flate.NewReader(body), nil

	case "br":
		return brotli.NewReader(body), nil

	case "":
		// 没有压缩,直接返回原始内容
		return body, nil

	default:
		// 未知编码,返回警告但仍然返回原始内容
		utils.Warnf("未知的Content-Encoding: %s", contentEncoding)
		return body, nil
	}
}
