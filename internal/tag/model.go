package tag

type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateTagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ใช้กับ POST /todos/{todoID}/tags
type AttachTagInput struct {
	TagID int64 `json:"tag_id"`
}
