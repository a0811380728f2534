package util

// 存储后端类型
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 上传文件允许的 MIME 前缀
const MimeImage = "image/"
