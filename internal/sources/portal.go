package sources

import (
	"fmt"
	"strings"

	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

const (
	// portalSearchURL EBM Portal检索地址
	portalSearchURL = "https://guidelines.ebmportal.com/?q=%s"

	// portalResultSelector 检索结果中第一条指南条目
	portalResultSelector = "article.node"

	// portalPDFSelector 指南详情页中的PDF下载按钮
	portalPDFSelector = "a.btn.btn-default.button[href$='.pdf']"
)

// PortalSearch EBM Portal检索策略
// 打开检索页,点击第一条结果进入详情页,提取PDF下载链接。
// 不校验结果标题(与检索库策略刻意不同)。
type PortalSearch struct{}

// Name 策略名称
func (PortalSearch) Name() string {
	return "EBM Portal"
}

// Try 检索标题并提取PDF链接
func (PortalSearch) Try(session Session, title string) models.Candidate {
	searchURL := fmt.Sprintf(portalSearchURL, strings.ReplaceAll(title, " ", "+"))
	if err := session.Navigate(searchURL); err != nil {
		utils.Errorf("EBM Portal检索失败 [%s]: %v", title, err)
		return models.Candidate{}
	}

	firstResult, err := session.WaitElement(portalResultSelector)
	if err != nil {
		utils.Errorf("EBM Portal未找到检索结果 [%s]: %v", title, err)
		return models.Candidate{}
	}

	// 点击第一条结果打开指南详情页
	if err := firstResult.Click(); err != nil {
		utils.Errorf("EBM Portal点击检索结果失败 [%s]: %v", title, err)
		return models.Candidate{}
	}
	session.Settle()

	pdfElement, err := session.WaitElement(portalPDFSelector)
	if err != nil {
		utils.Errorf("EBM Portal详情页未找到PDF链接 [%s]: %v", title, err)
		return models.Candidate{}
	}

	pdfURL, err := pdfElement.Attribute("href")
	if err != nil || pdfURL == "" {
		utils.Errorf("EBM Portal读取PDF链接失败 [%s]: %v", title, err)
		return models.Candidate{}
	}

	utils.Infof("在EBM Portal找到PDF: %s", pdfURL)
	return models.Candidate{PDFURL: pdfURL}
}
