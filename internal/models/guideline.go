package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// GuidelineRecord 指南记录
// 输入列表中的一条指南,处理后追加pdf_saved和pdf_link字段。
// 输入文件中除title外的其他字段原样保留,写回时不丢失。
type GuidelineRecord struct {
	Title    string // 指南标题(唯一键)
	PDFSaved bool   // PDF是否已保存
	PDFLink  string // 解析到的PDF链接(无则为空字符串)

	// 输入文件中的其他字段(原样透传)
	extra map[string]json.RawMessage
}

// UnmarshalJSON 从JSON反序列化,保留未知字段
func (g *GuidelineRecord) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if titleRaw, ok := raw["title"]; ok {
		if err := json.Unmarshal(titleRaw, &g.Title); err != nil {
			return fmt.Errorf("解析title字段失败: %w", err)
		}
		delete(raw, "title")
	}

	if savedRaw, ok := raw["pdf_saved"]; ok {
		if err := json.Unmarshal(savedRaw, &g.PDFSaved); err != nil {
			return fmt.Errorf("解析pdf_saved字段失败: %w", err)
		}
		delete(raw, "pdf_saved")
	}

	if linkRaw, ok := raw["pdf_link"]; ok {
		if err := json.Unmarshal(linkRaw, &g.PDFLink); err != nil {
			return fmt.Errorf("解析pdf_link字段失败: %w", err)
		}
		delete(raw, "pdf_link")
	}

	g.extra = raw
	return nil
}

// MarshalJSON 序列化为JSON,未知字段原样写回
func (g *GuidelineRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(g.extra)+3)
	for key, value := range g.extra {
		out[key] = value
	}

	titleRaw, err := json.Marshal(g.Title)
	if err != nil {
		return nil, err
	}
	out["title"] = titleRaw

	savedRaw, err := json.Marshal(g.PDFSaved)
	if err != nil {
		return nil, err
	}
	out["pdf_saved"] = savedRaw

	linkRaw, err := json.Marshal(g.PDFLink)
	if err != nil {
		return nil, err
	}
	out["pdf_link"] = linkRaw

	return json.Marshal(out)
}

// folderNameReplacer 标题到目录名的字符替换规则
// 空格转下划线,冒号和斜杠删除
var folderNameReplacer = strings.NewReplacer(" ", "_", ":", "", "/", "")

// FolderName 根据标题生成输出目录名
func FolderName(title string) string {
	return folderNameReplacer.Replace(title)
}

// LoadGuidelineList 从JSON文件加载指南列表
func LoadGuidelineList(filepath string) ([]*GuidelineRecord, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("读取指南列表失败: %w", err)
	}

	var records []*GuidelineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("解析指南列表失败: %w", err)
	}

	return records, nil
}

// SaveGuidelineList 保存指南列表到JSON文件(整表重写)
func SaveGuidelineList(filepath string, records []*GuidelineRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化指南列表失败: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}
