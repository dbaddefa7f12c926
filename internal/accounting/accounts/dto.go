package accounts

// CreateAccountRequest carries fields for a new chart-of-accounts node.
type CreateAccountRequest struct {
	Code     string `json:"code" validate:"required,max=20"`
	Name     string `json:"name" validate:"required,max=120"`
	Type     string `json:"type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID *int64 `json:"parent_id,omitempty"`
	IsParent bool   `json:"is_parent"`
}

// UpdateAccountRequest carries mutable account fields.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	IsActive *bool   `json:"is_active,omitempty"`
}
