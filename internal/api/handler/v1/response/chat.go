package response

type MarkReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
