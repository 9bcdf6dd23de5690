package catalog

type CreateServiceRequest struct {
	Name             string  `json:"name" validate:"required"`
	Slug             string  `json:"slug"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description"`
	DurationMinutes  int     `json:"duration_minutes" validate:"required,gt=0"`
	Price            float64 `json:"price" validate:"gte=0"`
	DisplayOrder     int     `json:"display_order"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ShortDescription *string  `json:"short_description,omitempty"`
	DurationMinutes  *int     `json:"duration_minutes,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	IsActive         *bool    `json:"is_active,omitempty"`
	DisplayOrder     *int     `json:"display_order,omitempty"`
}

type CreateStaffRequest struct {
	FirstName    string  `json:"first_name" validate:"required"`
	LastName     string  `json:"last_name" validate:"required"`
	Slug         string  `json:"slug"`
	Bio          string  `json:"bio"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Phone        string  `json:"phone"`
	DisplayOrder int     `json:"display_order"`
	ServiceIDs   []int64 `json:"service_ids"`
}

type UpdateStaffRequest struct {
	FirstName    *string  `json:"first_name,omitempty"`
	LastName     *string  `json:"last_name,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	DisplayOrder *int     `json:"display_order,omitempty"`
	ServiceIDs   *[]int64 `json:"service_ids,omitempty"`
}
