package model

// AttachmentKeySeparator 存储键中研究室名与原始文件名之间的分隔符
// 存储键 = 研究室名 + "_" + 原始文件名；同键重复上传为静默覆盖（last-writer-wins）
const AttachmentKeySeparator = "_"

// AttachmentInfo 附件元信息（列表/下载用；内容本体由附件存储持有）
type AttachmentInfo struct {
	Key      string `json:"key"`      // 存储键
	Filename string `json:"filename"` // 去掉研究室名前缀后的展示文件名
	Size     int64  `json:"size"`
}

// AttachmentKey 由研究室名与原始文件名推导存储键
func AttachmentKey(labName, filename string) string {
	return labName + AttachmentKeySeparator + filename
}

// AttachmentPrefix 某研究室全部附件的键前缀
func AttachmentPrefix(labName string) string {
	return labName + AttachmentKeySeparator
}
