package model

const (
	UploadProcessing = "processing"
	UploadUploading  = "uploading"
	UploadCompleted  = "completed"
	UploadFailed     = "failed"
)

// UploadProgress is the pollable state of one image upload.
type UploadProgress struct {
	UploadID       string `json:"uploadId"`
	Status         string `json:"status"`
	Percentage     int    `json:"progress"`
	UploadedChunks int    `json:"uploadedChunks"`
	TotalChunks    int    `json:"totalChunks"`
	Error          string `json:"error,omitempty"`
}
