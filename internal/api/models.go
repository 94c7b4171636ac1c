package api

// TokenRequest is the part of the POST /jwt body that is validated. The
// whole body becomes the token's claims.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// StatusUpdateRequest is the body of PATCH /api/v1/user/request/{id}.
type StatusUpdateRequest struct {
	FoodStatus string `json:"foodStatus" validate:"required"`
}
