package sources

import "testing"

func TestPortalSearch_Success(t *testing.T) {
	session := newFakeSession()

	// 详情页: 含PDF下载按钮
	detailURL := "detail"
	session.addPage(detailURL, map[string][]*fakeElement{
		portalPDFSelector: {
			{attrs: map[string]string{"href": "https://guidelines.ebmportal.com/files/asthma.pdf"}},
		},
	})

	// 检索页: 第一条结果点击后跳转到详情页
	firstResult := &fakeElement{
		onClick: func() { session.current = session.pages[detailURL] },
	}
	session.addPage("https://guidelines.ebmportal.com/?q=Asthma+Management+Guideline", map[string][]*fakeElement{
		portalResultSelector: {firstResult},
	})

	candidate := PortalSearch{}.Try(session, "Asthma Management Guideline")

	if !candidate.Resolved() {
		t.Fatal("应解析到PDF链接")
	}
	if candidate.PDFURL != "https://guidelines.ebmportal.com/files/asthma.pdf" {
		t.Errorf("PDFURL = %q", candidate.PDFURL)
	}
	if !firstResult.clicked {
		t.Error("应点击第一条检索结果")
	}
	if candidate.Category != "" {
		t.Errorf("EBM Portal不提供分类, 得到: %q", candidate.Category)
	}
}

func TestPortalSearch_NoResults(t *testing.T) {
	session := newFakeSession()
	session.addPage("https://guidelines.ebmportal.com/?q=Unknown+Guideline", map[string][]*fakeElement{})

	candidate := PortalSearch{}.Try(session, "Unknown Guideline")

	if candidate.Resolved() {
		t.Errorf("无检索结果应返回零值候选, 得到: %+v", candidate)
	}
}

func TestPortalSearch_DetailPageWithoutPDF(t *testing.T) {
	session := newFakeSession()

	detailURL := "detail"
	session.addPage(detailURL, map[string][]*fakeElement{})

	session.addPage("https://guidelines.ebmportal.com/?q=No+PDF+Here", map[string][]*fakeElement{
		portalResultSelector: {
			{onClick: func() { session.current = session.pages[detailURL] }},
		},
	})

	candidate := PortalSearch{}.Try(session, "No PDF Here")

	if candidate.Resolved() {
		t.Errorf("详情页无PDF应返回零值候选, 得到: %+v", candidate)
	}
}

func TestPortalSearch_ClickFailed(t *testing.T) {
	session := newFakeSession()
	session.addPage("https://guidelines.ebmportal.com/?q=Broken+Result", map[string][]*fakeElement{
		portalResultSelector: {
			{clickErr: errClickBlocked},
		},
	})

	candidate := PortalSearch{}.Try(session, "Broken Result")

	if candidate.Resolved() {
		t.Errorf("点击失败应返回零值候选, 得到: %+v", candidate)
	}
}
