package models

import (
	"encoding/json"
	"os"
)

// Checkpoint 检查点
// 记录已到达终态的标题,支持批处理中断后恢复。
// 不变量: 一个标题最多出现在completed和failed其中之一。
type Checkpoint struct {
	Completed []string `json:"completed"` // 成功下载的标题
	Failed    []string `json:"failed"`    // 失败的标题

	// 索引(不参与序列化)
	index map[string]bool
}

// NewCheckpoint 创建空检查点
func NewCheckpoint() *Checkpoint {
	return &Checkpoint{
		Completed: make([]string, 0),
		Failed:    make([]string, 0),
		index:     make(map[string]bool),
	}
}

// rebuildIndex 重建标题索引,并保证两个集合不相交
// 手工编辑过的检查点可能同时列出同一标题,以completed为准。
func (c *Checkpoint) rebuildIndex() {
	c.index = make(map[string]bool, len(c.Completed)+len(c.Failed))

	completed := make([]string, 0, len(c.Completed))
	for _, title := range c.Completed {
		if c.index[title] {
			continue
		}
		c.index[title] = true
		completed = append(completed, title)
	}
	c.Completed = completed

	failed := make([]string, 0, len(c.Failed))
	for _, title := range c.Failed {
		if c.index[title] {
			continue
		}
		c.index[title] = true
		failed = append(failed, title)
	}
	c.Failed = failed
}

// Contains 标题是否已到达终态(成功或失败)
func (c *Checkpoint) Contains(title string) bool {
	return c.index[title]
}

// MarkCompleted 记录成功标题
// 已有终态的标题不重复记录。
func (c *Checkpoint) MarkCompleted(title string) {
	if c.index[title] {
		return
	}
	c.index[title] = true
	c.Completed = append(c.Completed, title)
}

// MarkFailed 记录失败标题
// 已有终态的标题不重复记录。
func (c *Checkpoint) MarkFailed(title string) {
	if c.index[title] {
		return
	}
	c.index[title] = true
	c.Failed = append(c.Failed, title)
}

// ToJSON 序列化为JSON
func (c *Checkpoint) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromJSON 从JSON反序列化
func (c *Checkpoint) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	c.rebuildIndex()
	return nil
}

// SaveToFile 保存到文件(整文件重写)
func (c *Checkpoint) SaveToFile(filepath string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadCheckpointFromFile 从文件加载检查点
// 文件不存在时返回空检查点,不视为错误。
func LoadCheckpointFromFile(filepath string) (*Checkpoint, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCheckpoint(), nil
		}
		return nil, err
	}

	cp := NewCheckpoint()
	if err := cp.FromJSON(data); err != nil {
		return nil, err
	}

	return cp, nil
}
