package dto

// ── 掲示板模块 DTO ──

// CreateCommentRequest 投稿请求
// body 必填校验放在 Service 层（提交协议的职责）；author 留空时补默认显示名
type CreateCommentRequest struct {
	Author string `json:"author" binding:"omitempty,max=50"`
	Body   string `json:"body"   binding:"omitempty,max=2000"`
}

// CommentResponse 投稿信息响应
type CommentResponse struct {
	LabName  string `json:"lab_name"`
	Author   string `json:"author"`
	PostedAt string `json:"posted_at"`
	Body     string `json:"body"`
}
