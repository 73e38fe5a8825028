package sources

import "testing"

// googleResultLink 构造一条Google检索结果链接
func googleResultLink(href string) *fakeElement {
	return &fakeElement{attrs: map[string]string{"href": href}}
}

const asthmaSearchURL = "https://www.google.com/search?q=Asthma+Guideline+full+text+pdf"

func TestWebSearch_DirectPDF(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://example.com/guidelines/asthma.PDF"),
			googleResultLink("https://pmc.ncbi.nlm.nih.gov/articles/PMC123/"),
		},
	})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	// 直接PDF命中,后面的PMC链接不再访问
	if candidate.PDFURL != "https://example.com/guidelines/asthma.PDF" {
		t.Errorf("PDFURL = %q", candidate.PDFURL)
	}
	if len(session.navigated) != 1 {
		t.Errorf("直接命中后不应再导航, 导航记录: %v", session.navigated)
	}
}

func TestWebSearch_PMCPreferredOverWebpage(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://journal.example.org/article/asthma"),
			googleResultLink("https://pmc.ncbi.nlm.nih.gov/articles/PMC123/"),
		},
	})

	// PMC页面内的站内PDF链接
	session.addPage("https://pmc.ncbi.nlm.nih.gov/articles/PMC123/", map[string][]*fakeElement{
		pdfAnchorSelector: {
			{attrs: map[string]string{"href": "/pdf/asthma.pdf"}},
		},
	})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	// PMC优先于普通网页,相对链接以PMC段之前的URL补全
	want := "https://pmc.ncbi.nlm.nih.gov/articles/pdf/asthma.pdf"
	if candidate.PDFURL != want {
		t.Errorf("PDFURL = %q, want %q", candidate.PDFURL, want)
	}

	for _, url := range session.navigated {
		if url == "https://journal.example.org/article/asthma" {
			t.Error("有PMC链接时不应访问普通网页")
		}
	}
}

func TestWebSearch_LoginLinksSkipped(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://portal.example.com/login?next=asthma.pdf"),
			googleResultLink("https://pmc.ncbi.nlm.nih.gov/articles/PMC456/"),
		},
	})

	session.addPage("https://pmc.ncbi.nlm.nih.gov/articles/PMC456/", map[string][]*fakeElement{
		pdfAnchorSelector: {
			{attrs: map[string]string{"href": "https://pmc.ncbi.nlm.nih.gov/pdf/full.pdf"}},
		},
	})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	// login链接即使以.pdf结尾也要跳过,落到PMC
	if candidate.PDFURL != "https://pmc.ncbi.nlm.nih.gov/pdf/full.pdf" {
		t.Errorf("PDFURL = %q", candidate.PDFURL)
	}
}

func TestWebSearch_WebpageFallback(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://journal.example.org/article/asthma/"),
		},
	})

	session.addPage("https://journal.example.org/article/asthma/", map[string][]*fakeElement{
		pdfAnchorSelector: {
			{attrs: map[string]string{"href": "/files/asthma.pdf"}},
		},
	})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	// 相对链接以去掉末尾斜杠的页面URL补全
	want := "https://journal.example.org/article/asthma/files/asthma.pdf"
	if candidate.PDFURL != want {
		t.Errorf("PDFURL = %q, want %q", candidate.PDFURL, want)
	}
}

func TestWebSearch_AllLoginLinks(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://a.example.com/login"),
			googleResultLink("https://b.example.com/Login/view"),
		},
	})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	if candidate.Resolved() {
		t.Errorf("全部是login链接时应返回零值候选, 得到: %+v", candidate)
	}
	if len(session.navigated) != 1 {
		t.Errorf("不应访问任何login链接, 导航记录: %v", session.navigated)
	}
}

func TestWebSearch_NoResults(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	if candidate.Resolved() {
		t.Errorf("无检索结果应返回零值候选, 得到: %+v", candidate)
	}
}

func TestWebSearch_OnlyTopThreeResults(t *testing.T) {
	session := newFakeSession()
	session.addPage(asthmaSearchURL, map[string][]*fakeElement{
		googleResultSelector: {
			googleResultLink("https://a.example.com/page"),
			googleResultLink("https://b.example.com/page"),
			googleResultLink("https://c.example.com/page"),
			// 第4条是直接PDF,但不在考察范围内
			googleResultLink("https://d.example.com/asthma.pdf"),
		},
	})
	// 第1条网页作为兜底被访问,页面为空白
	session.addPage("https://a.example.com/page", map[string][]*fakeElement{})

	candidate := WebSearch{}.Try(session, "Asthma Guideline")

	if candidate.PDFURL == "https://d.example.com/asthma.pdf" {
		t.Error("不应考察前3条之外的检索结果")
	}
}

func TestCollectLinks_DedupAndFragmentStrip(t *testing.T) {
	results := []Element{
		googleResultLink("https://example.com/page#section1"),
		googleResultLink("https://example.com/page#section2"),
		googleResultLink("https://example.com/other"),
		googleResultLink(""),
	}

	links := collectLinks(results)

	if len(links) != 2 {
		t.Fatalf("链接数 = %d, want 2: %v", len(links), links)
	}
	if links[0] != "https://example.com/page" {
		t.Errorf("links[0] = %q, 片段应被去除", links[0])
	}
	if links[1] != "https://example.com/other" {
		t.Errorf("links[1] = %q", links[1])
	}
}
