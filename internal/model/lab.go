package model

// 新規登録时未填写字段的默认值（与既有数据保持一致，均为日文占位文本）
const (
	PlaceholderLink       = "#"
	DefaultEnglishReq     = "情報募集中"
	DefaultExamSchedule   = "要確認"
	DefaultPastExamMethod = "掲示板で聞いてみよう"
)

// Lab 研究室一条记录 — 对应远程表 data / 本地 data.csv 的 11 列
// 研究室名为唯一业务键（区分大小写），作为评论与附件的外键约定，但不强制唯一：
// 重复登记不做去重。所有字段均为自由文本，链接字段不做格式校验。
type Lab struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"                json:"-"`
	University     string `gorm:"column:university;type:text"            json:"university"`
	Department     string `gorm:"column:department;type:text"            json:"department"`
	Name           string `gorm:"column:lab_name;type:text;not null"     json:"lab_name"`
	Keywords       string `gorm:"column:keywords;type:text"              json:"keywords"`
	Textbook       string `gorm:"column:textbook;type:text"              json:"textbook"`
	PurchaseLink   string `gorm:"column:purchase_link;type:text"         json:"purchase_link"`
	ExamSubjects   string `gorm:"column:exam_subjects;type:text"         json:"exam_subjects"`
	OfficialLink   string `gorm:"column:official_link;type:text"         json:"official_link"`
	EnglishReq     string `gorm:"column:english_requirement;type:text"   json:"english_requirement"`
	ExamSchedule   string `gorm:"column:exam_schedule;type:text"         json:"exam_schedule"`
	PastExamMethod string `gorm:"column:past_exam_method;type:text"      json:"past_exam_method"`
}

// TableName 指定表名（远程后端工作表约定名为 data）
func (Lab) TableName() string { return "data" }
