package models

// MediaUpload is the opaque result of storing an uploaded photo.
type MediaUpload struct {
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ImageHash    string `json:"image_hash"`
}
