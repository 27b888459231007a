package dto

// RegisterReq represents the request body for the /register endpoint.
// Password strength and the confirmation match are checked by the usecase so
// that the user sees its messages.
type RegisterReq struct {
	Username     string `json:"username" binding:"required,max=150"`
	Email        string `json:"email" binding:"omitempty,email,max=254"`
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}
