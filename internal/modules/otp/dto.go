package otp

type SendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
