package sources

import (
	"fmt"
	"time"

	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Element 页面元素能力接口
type Element interface {
	// Attribute 读取属性值,属性不存在时返回空字符串
	Attribute(name string) (string, error)

	// Text 读取元素文本
	Text() (string, error)

	// Click 点击元素
	Click() error

	// Element 在元素内查找第一个匹配的子元素(有界等待)
	Element(selector string) (Element, error)

	// Elements 在元素内立即查找所有匹配的子元素
	Elements(selector string) ([]Element, error)
}

// Session 浏览器会话能力接口
// 每个标题的解析独占一个会话,解析结束后必须Close。
type Session interface {
	// Navigate 导航到URL,等待页面加载并执行固定的稳定延迟
	Navigate(url string) error

	// Settle 执行固定的稳定延迟(点击触发导航后使用)
	Settle()

	// WaitElement 有界等待第一个匹配的元素出现
	// 超时或不存在返回错误,调用方视为"未找到"而非故障。
	WaitElement(selector string) (Element, error)

	// Elements 立即查找所有匹配的元素,不等待
	Elements(selector string) ([]Element, error)

	// Close 关闭会话并释放浏览器资源
	Close()
}

// Factory 会话工厂,每个标题创建一个新会话
type Factory func() (Session, error)

// rodSession 基于go-rod的浏览器会话
type rodSession struct {
	browser *rod.Browser
	page    *rod.Page
	settle  time.Duration
	timeout time.Duration
}

// NewRodSession 启动浏览器并创建会话
func NewRodSession(config models.CrawlConfig) (Session, error) {
	l := launcher.New().
		Headless(config.Headless).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.MustClose()
		return nil, fmt.Errorf("创建标签页失败: %w", err)
	}

	utils.Debugf("浏览器会话已启动: %s", controlURL)

	return &rodSession{
		browser: browser,
		page:    page,
		settle:  time.Duration(config.WaitTime) * time.Second,
		timeout: time.Duration(config.ElementTimeout) * time.Second,
	}, nil
}

// Navigate 导航到URL并等待页面稳定
func (s *rodSession) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return fmt.Errorf("导航失败 [%s]: %w", url, err)
	}
	if err := s.page.WaitLoad(); err != nil {
		utils.Warnf("等待页面加载失败 [%s]: %v", url, err)
	}
	s.Settle()
	return nil
}

// Settle 固定稳定延迟,等待动态内容渲染
func (s *rodSession) Settle() {
	time.Sleep(s.settle)
}

// WaitElement 有界等待元素出现
func (s *rodSession) WaitElement(selector string) (Element, error) {
	el, err := s.page.Timeout(s.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("元素未出现 [%s]: %w", selector, err)
	}
	return &rodElement{el: el.CancelTimeout(), timeout: s.timeout}, nil
}

// Elements 立即查找所有匹配元素
func (s *rodSession) Elements(selector string) ([]Element, error) {
	els, err := s.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("查找元素失败 [%s]: %w", selector, err)
	}

	result := make([]Element, 0, len(els))
	for _, el := range els {
		result = append(result, &rodElement{el: el, timeout: s.timeout})
	}
	return result, nil
}

// Close 关闭浏览器
func (s *rodSession) Close() {
	if s.browser != nil {
		s.browser.MustClose()
		utils.Debugf("浏览器会话已关闭")
	}
}

// rodElement go-rod元素包装
type rodElement struct {
	el      *rod.Element
	timeout time.Duration
}

func (e *rodElement) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}

func (e *rodElement) Element(selector string) (Element, error) {
	el, err := e.el.Timeout(e.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("子元素未找到 [%s]: %w", selector, err)
	}
	return &rodElement{el: el.CancelTimeout(), timeout: e.timeout}, nil
}

func (e *rodElement) Elements(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("查找子元素失败 [%s]: %w", selector, err)
	}

	result := make([]Element, 0, len(els))
	for _, el := range els {
		result = append(result, &rodElement{el: el, timeout: e.timeout})
	}
	return result, nil
}
