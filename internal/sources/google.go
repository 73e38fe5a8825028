package sources

import (
	"fmt"
	"strings"

	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

const (
	// googleSearchURL Google检索地址
	googleSearchURL = "https://www.google.com/search?q=%s"

	// googleResultSelector 自然检索结果中的链接元素
	googleResultSelector = "div.tF2Cxc a"

	// pmcHost PubMed Central域名特征
	pmcHost = "pmc.ncbi.nlm.nih.gov"

	// maxSearchResults 只考察前几条自然结果
	maxSearchResults = 3
)

// WebSearch Google兜底检索策略
// 取前3条自然结果去重后逐条分类:
// 含login的链接不可抓取直接跳过;.pdf结尾的直接命中;
// PMC链接优先于普通网页,两者都需要二次提取。
type WebSearch struct{}

// Name 策略名称
func (WebSearch) Name() string {
	return "Google检索"
}

// Try 检索标题并从结果中解析PDF链接
func (WebSearch) Try(session Session, title string) models.Candidate {
	query := strings.ReplaceAll(title+" full text pdf", " ", "+")
	if err := session.Navigate(fmt.Sprintf(googleSearchURL, query)); err != nil {
		utils.Errorf("Google检索失败 [%s]: %v", title, err)
		return models.Candidate{}
	}

	results, err := session.Elements(googleResultSelector)
	if err != nil {
		utils.Errorf("Google读取检索结果失败 [%s]: %v", title, err)
		return models.Candidate{}
	}
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	links := collectLinks(results)

	var pmcURL, webpageURL string
	for _, link := range links {
		lower := strings.ToLower(link)

		switch {
		case strings.Contains(lower, "login"):
			// 需要登录的链接无法抓取
			utils.Warnf("跳过需要登录的检索结果: %s", link)

		case strings.HasSuffix(lower, ".pdf"):
			utils.Infof("在Google找到PDF: %s", link)
			return models.Candidate{PDFURL: link}

		case strings.Contains(link, pmcHost):
			if pmcURL == "" {
				pmcURL = link
			}

		default:
			if webpageURL == "" {
				webpageURL = link
			}
		}
	}

	if pmcURL != "" {
		utils.Infof("Google未找到直接PDF,尝试PMC页面: %s", pmcURL)
		return models.Candidate{PDFURL: ExtractPMCPDF(session, pmcURL)}
	}

	if webpageURL != "" {
		if strings.Contains(strings.ToLower(webpageURL), "login") {
			return models.Candidate{}
		}
		utils.Infof("Google未找到直接PDF和PMC,尝试普通网页: %s", webpageURL)
		return models.Candidate{PDFURL: ExtractWebpagePDF(session, webpageURL)}
	}

	utils.Warnf("Google检索结果中没有可用的PDF、PMC或网页链接 [%s]", title)
	return models.Candidate{}
}

// collectLinks 读取结果链接,去掉URL片段后按首次出现顺序去重
func collectLinks(results []Element) []string {
	links := make([]string, 0, len(results))
	seen := make(map[string]bool, len(results))

	for _, result := range results {
		href, err := result.Attribute("href")
		if err != nil || href == "" {
			continue
		}

		href = strings.SplitN(href, "#", 2)[0]
		if seen[href] {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}

	return links
}
