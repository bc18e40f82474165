package post

// CreatePostDTO is the payload for creating a post. Status defaults to DRAFT;
// only an explicit "PUBLISHED" publishes immediately.
type CreatePostDTO struct {
	Title         string `json:"title"   binding:"required,max=200"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt" binding:"max=500"`
	CoverImageURL string `json:"coverImageUrl"`
	Tags          string `json:"tags"`
	Status        string `json:"status"`
}

// UpdatePostDTO replaces the editable fields of a post. The slug is never
// recomputed on edit. An empty status leaves the current status untouched;
// anything else must match the declared enum.
type UpdatePostDTO struct {
	Title         string `json:"title"   binding:"required,max=200"`
	Content       string `json:"content" binding:"required"`
	Excerpt       string `json:"excerpt" binding:"max=500"`
	CoverImageURL string `json:"coverImageUrl"`
	Tags          string `json:"tags"`
	Status        string `json:"status"`
}
