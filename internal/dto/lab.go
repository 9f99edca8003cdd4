package dto

// ── 研究室模块 DTO ──

// LabListRequest 检索条件
// university 可多值；完全未指定时由 Service 默认"全部大学"，避免空集合导致空结果
type LabListRequest struct {
	Universities []string `form:"university"`
	Keyword      string   `form:"keyword"`
}

// CreateLabRequest 新規登録请求
// 仅研究室名必填，其余字段留空时由提交协议补默认值；格式不做校验
type CreateLabRequest struct {
	University     string `json:"university"          binding:"omitempty,max=100"`
	Department     string `json:"department"          binding:"omitempty,max=100"`
	Name           string `json:"lab_name"            binding:"omitempty,max=100"`
	Keywords       string `json:"keywords"            binding:"omitempty,max=500"`
	Textbook       string `json:"textbook"            binding:"omitempty,max=500"`
	PurchaseLink   string `json:"purchase_link"       binding:"omitempty,max=1000"`
	ExamSubjects   string `json:"exam_subjects"       binding:"omitempty,max=500"`
	OfficialLink   string `json:"official_link"       binding:"omitempty,max=1000"`
	EnglishReq     string `json:"english_requirement" binding:"omitempty,max=500"`
	ExamSchedule   string `json:"exam_schedule"       binding:"omitempty,max=500"`
	PastExamMethod string `json:"past_exam_method"    binding:"omitempty,max=500"`
}

// LabResponse 研究室信息响应（11 字段全量）
type LabResponse struct {
	University     string `json:"university"`
	Department     string `json:"department"`
	Name           string `json:"lab_name"`
	Keywords       string `json:"keywords"`
	Textbook       string `json:"textbook"`
	PurchaseLink   string `json:"purchase_link"`
	ExamSubjects   string `json:"exam_subjects"`
	OfficialLink   string `json:"official_link"`
	EnglishReq     string `json:"english_requirement"`
	ExamSchedule   string `json:"exam_schedule"`
	PastExamMethod string `json:"past_exam_method"`
}
