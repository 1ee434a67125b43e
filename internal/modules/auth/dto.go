package auth

import "upasthit/internal/domain"

type SignInRequest struct {
	RollNumber int64  `json:"rollNumber"`
	Email      string `json:"email" binding:"omitempty,email"`
	Password   string `json:"password" binding:"required"`
}

type UserPublic struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

func toPublic(a *domain.Account) UserPublic {
	return UserPublic{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  string(a.Role),
	}
}
