package model

// DefaultAuthor 匿名投稿时的默认显示名
const DefaultAuthor = "名無し"

// CommentTimeLayout 投稿时间格式（分钟精度，与既有 comments.csv 保持一致）
const CommentTimeLayout = "2006-01-02 15:04"

// Comment 掲示板一条投稿 — 对应远程表 comments / 本地 comments.csv 的 4 列
// PostedAt 由存储层在写入时生成，调用方不提供；投稿后不可修改、不可删除。
type Comment struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"                 json:"-"`
	LabName  string `gorm:"column:lab_name;type:text;not null;index" json:"lab_name"`
	Author   string `gorm:"column:author;type:text"                  json:"author"`
	PostedAt string `gorm:"column:posted_at;type:varchar(16)"        json:"posted_at"`
	Body     string `gorm:"column:body;type:text;not null"           json:"body"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }
