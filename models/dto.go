package models

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateFlashcardRequest struct {
	Title      string   `json:"title" binding:"required,min=1,max=200"`
	Phrase     string   `json:"phrase" binding:"max=500"`
	Definition string   `json:"definition" binding:"required"`
	FrontImage string   `json:"front_image"`
	BackImage  string   `json:"back_image"`
	TagNames   []string `json:"tag_names"`
	TagIDs     []uint   `json:"tag_ids"`
}

// UpdateFlashcardRequest creates the next version of a card. Nil fields fall
// back to the current live version's values; tags default to the source's
// tags unless TagNames or TagIDs is supplied.
type UpdateFlashcardRequest struct {
	Title      *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Phrase     *string  `json:"phrase" binding:"omitempty,max=500"`
	Definition *string  `json:"definition"`
	FrontImage *string  `json:"front_image"`
	BackImage  *string  `json:"back_image"`
	TagNames   []string `json:"tag_names"`
	TagIDs     []uint   `json:"tag_ids"`
}

type RevertVersionRequest struct {
	VersionID uint `json:"version_id" binding:"required"`
}

type CreateTagRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=50"`
	Description string `json:"description"`
}

type UpdateTagRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=50"`
	Description *string `json:"description"`
}

type UpdateUserRequest struct {
	Role              *UserRole `json:"role"`
	IsActive          *bool     `json:"is_active"`
	DailyEmailEnabled *bool     `json:"daily_email_enabled"`
}

type FlashcardListParams struct {
	Search    string `form:"search"`
	Tags      string `form:"tags"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	SortBy    string `form:"sort_by,default=updated_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

type UserListParams struct {
	Role     string `form:"role"`
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}
