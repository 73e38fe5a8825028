package models

// Candidate 候选结果
// 单个数据源策略对一个标题的解析结果。
// PDFURL为空表示该策略未解析到PDF;Category仅由检索库策略尽力提供。
type Candidate struct {
	Category string `json:"category"` // 指南分类标签(可为空)
	PDFURL   string `json:"pdf_url"`  // PDF链接(空表示未解析到)
}

// Resolved 是否解析到了PDF链接
func (c Candidate) Resolved() bool {
	return c.PDFURL != ""
}
