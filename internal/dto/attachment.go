package dto

// ── 附件模块 DTO ──

// AttachmentResponse 附件元信息响应
type AttachmentResponse struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
