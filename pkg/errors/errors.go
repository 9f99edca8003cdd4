package errors

import "errors"

// ErrStoreUnavailable 存储后端不可达或读写失败（传输层错误）
var ErrStoreUnavailable = errors.New("数据存储暂时不可用，请稍后重试")

// ErrAttachmentNotFound 请求的附件不存在
var ErrAttachmentNotFound = errors.New("附件不存在")
