package request

// CreateMenuItemRequest represents a menu item creation request
type CreateMenuItemRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=255"`
	Category  string  `json:"category" binding:"omitempty,max=100"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Available *bool   `json:"available"`
}

// UpdateMenuItemRequest represents a menu item update request
type UpdateMenuItemRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Category  *string  `json:"category" binding:"omitempty,max=100"`
	Price     *float64 `json:"price" binding:"omitempty,gt=0"`
	Available *bool    `json:"available"`
}

// MenuFilterRequest represents menu list filter parameters
type MenuFilterRequest struct {
	Search        string `form:"search"`
	Category      string `form:"category"`
	AvailableOnly bool   `form:"available_only"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
