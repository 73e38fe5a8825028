package sources

import (
	"strings"

	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

// pdfAnchorSelector 指向PDF文件的链接元素
const pdfAnchorSelector = "a[href$='.pdf']"

// ExtractPMCPDF 从PubMed Central页面提取PDF链接
// 站内相对链接(/pdf开头)以PMC页面URL截断到"/PMC"段之前的部分作为前缀补全。
// 未找到返回空字符串,不视为错误。
func ExtractPMCPDF(session Session, pmcURL string) string {
	if err := session.Navigate(pmcURL); err != nil {
		utils.Errorf("访问PMC页面失败 [%s]: %v", pmcURL, err)
		return ""
	}

	el, err := session.WaitElement(pdfAnchorSelector)
	if err != nil {
		utils.Errorf("PMC页面未找到PDF链接 [%s]: %v", pmcURL, err)
		return ""
	}

	pdfURL, err := el.Attribute("href")
	if err != nil || pdfURL == "" {
		utils.Errorf("读取PMC PDF链接失败 [%s]: %v", pmcURL, err)
		return ""
	}

	if strings.HasPrefix(pdfURL, "/pdf") {
		pdfURL = strings.SplitN(pmcURL, "/PMC", 2)[0] + pdfURL
	}

	utils.Infof("在PMC找到PDF: %s", pdfURL)
	return pdfURL
}

// ExtractWebpagePDF 从普通网页提取PDF链接
// 站内相对链接(/开头)以去掉末尾斜杠的页面URL作为前缀补全。
// 未找到返回空字符串,不视为错误。
func ExtractWebpagePDF(session Session, webpageURL string) string {
	if err := session.Navigate(webpageURL); err != nil {
		utils.Errorf("访问网页失败 [%s]: %v", webpageURL, err)
		return ""
	}

	el, err := session.WaitElement(pdfAnchorSelector)
	if err != nil {
		utils.Errorf("网页未找到PDF链接 [%s]: %v", webpageURL, err)
		return ""
	}

	pdfURL, err := el.Attribute("href")
	if err != nil || pdfURL == "" {
		utils.Errorf("读取网页PDF链接失败 [%s]: %v", webpageURL, err)
		return ""
	}

	if strings.HasPrefix(pdfURL, "/") {
		pdfURL = strings.TrimRight(webpageURL, "/") + pdfURL
	}

	utils.Infof("在网页找到PDF: %s", pdfURL)
	return pdfURL
}
