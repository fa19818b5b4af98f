package dto

// UnreadCountResponse for GET /notifications/unread-count
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse reports how many records changed
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
