package util

const (
	DateFormat      = "2006-01-02"
	TimeFormat      = "2006-01-02 15:04:05"
	SnapshotPattern = "20060102T150405Z"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	HeaderRequestID  = "X-Request-ID"
	ContextRequestID = "request_id"
)

const MimeJSON = "application/json"
