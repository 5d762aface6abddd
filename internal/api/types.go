package api

import "github.com/google/uuid"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

type CreateHouseholdRequest struct {
	Name string `json:"name" binding:"required"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Admin bool   `json:"admin"`
}

type MemberResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	MemberType  string    `json:"member_type"`
	IsAdmin     bool      `json:"is_admin"`
	JoinedAt    string    `json:"joined_at"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type IngredientRequest struct {
	Name       string     `json:"name" binding:"required"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type RecipeRequest struct {
	Name        string      `json:"name" binding:"required"`
	Body        string      `json:"body"`
	Ingredients []uuid.UUID `json:"ingredients"`
}
