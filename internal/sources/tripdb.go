package sources

import (
	"fmt"
	"strings"

	"github.com/RecoveryAshes/GuidelineFetch/internal/models"
	"github.com/RecoveryAshes/GuidelineFetch/internal/utils"
)

const (
	// tripSearchURL Trip Database检索地址
	tripSearchURL = "https://www.tripdatabase.com/Searchresult?criteria=%s&search_type=standard"

	// tripResultSelector 检索结果中第一张结果卡片
	tripResultSelector = ".result"

	// tripTitleSelector 结果卡片中的标题元素
	tripTitleSelector = "a h5"

	// tripCategorySelector 结果卡片中的分类标签
	tripCategorySelector = ".result--taxonomies .badge-evidence-secondary"
)

// TripDatabaseSearch Trip Database检索策略
// 打开检索页,校验第一张结果卡片的标题(大小写不敏感),
// 标题不符时宁可放弃也不关联错误文档;匹配时提取分类标签和卡片内第一个PDF链接。
type TripDatabaseSearch struct{}

// Name 策略名称
func (TripDatabaseSearch) Name() string {
	return "Trip Database"
}

// Try 检索标题,校验后提取分类和PDF链接
func (TripDatabaseSearch) Try(session Session, expectedTitle string) models.Candidate {
	searchURL := fmt.Sprintf(tripSearchURL, strings.ReplaceAll(expectedTitle, " ", "%20"))
	if err := session.Navigate(searchURL); err != nil {
		utils.Errorf("Trip Database检索失败 [%s]: %v", expectedTitle, err)
		return models.Candidate{}
	}

	firstResult, err := session.WaitElement(tripResultSelector)
	if err != nil {
		utils.Errorf("Trip Database未找到检索结果 [%s]: %v", expectedTitle, err)
		return models.Candidate{}
	}

	titleElement, err := firstResult.Element(tripTitleSelector)
	if err != nil {
		utils.Errorf("Trip Database结果卡片缺少标题 [%s]: %v", expectedTitle, err)
		return models.Candidate{}
	}

	actualTitle, err := titleElement.Text()
	if err != nil {
		utils.Errorf("Trip Database读取标题失败 [%s]: %v", expectedTitle, err)
		return models.Candidate{}
	}
	actualTitle = strings.TrimSpace(actualTitle)
	utils.Infof("Trip Database检索到标题: %s", actualTitle)

	// 标题校验: 不符则放弃,避免下载到错误文档
	if !strings.EqualFold(actualTitle, expectedTitle) {
		utils.Warnf("Trip Database标题不匹配。期望: '%s', 实际: '%s'", expectedTitle, actualTitle)
		return models.Candidate{}
	}

	// 分类标签尽力提取,缺失不影响结果
	var category string
	if categoryElement, err := firstResult.Element(tripCategorySelector); err == nil {
		if text, err := categoryElement.Text(); err == nil {
			category = strings.TrimSpace(text)
		}
	} else {
		utils.Debugf("Trip Database结果卡片无分类标签 [%s]", expectedTitle)
	}

	// 卡片内第一个PDF链接(可能没有)
	var pdfURL string
	pdfElements, err := firstResult.Elements(pdfAnchorSelector)
	if err != nil {
		utils.Errorf("Trip Database查找PDF链接失败 [%s]: %v", expectedTitle, err)
		return models.Candidate{Category: category}
	}
	if len(pdfElements) > 0 {
		if href, err := pdfElements[0].Attribute("href"); err == nil {
			pdfURL = href
		}
	}

	if pdfURL != "" {
		utils.Infof("在Trip Database找到PDF: %s", pdfURL)
	}
	return models.Candidate{Category: category, PDFURL: pdfURL}
}
