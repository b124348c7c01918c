package requestresponse

// UpdateAccountRequest : изменяемые поля профиля
type UpdateAccountRequest struct {
	FullName string `json:"fullName" example:"Test User"`
	Email    string `json:"email" example:"t1@x.com"`
}
