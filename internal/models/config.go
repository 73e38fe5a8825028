package models

import "fmt"

// CrawlConfig 浏览器解析配置
type CrawlConfig struct {
	WaitTime       int  `json:"wait_time" mapstructure:"wait_time"`             // 页面导航后固定等待时间(秒) (默认:5)
	ElementTimeout int  `json:"element_timeout" mapstructure:"element_timeout"` // 等待页面元素出现的超时(秒) (默认:10)
	Headless       bool `json:"headless" mapstructure:"headless"`               // 无头模式 (默认:true)
}

// Validate 验证配置
func (c *CrawlConfig) Validate() error {
	if c.WaitTime < 0 || c.WaitTime > 60 {
		return fmt.Errorf("等待时间必须在0-60秒之间")
	}
	if c.ElementTimeout < 1 || c.ElementTimeout > 120 {
		return fmt.Errorf("元素超时必须在1-120秒之间")
	}
	return nil
}
