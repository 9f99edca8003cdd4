package repository

// Repository 所有 Repository 的聚合入口
// 具体后端（CSV/Postgres、本地目录/MinIO）在启动时选定一次，
// 业务层只依赖接口，不感知后端差异。
type Repository struct {
	Record     RecordRepository
	Attachment AttachmentRepository
}
