package dto

import "github.com/yukikurage/freelance-tracker-api/internal/models"

// UserDTO is the public-safe projection of a user
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserDTO converts a user record to UserDTO
func ToUserDTO(user models.Record) UserDTO {
	id, _ := user.ID()
	return UserDTO{
		ID:    id,
		Name:  user.String("name"),
		Email: user.String(models.UserFieldEmail),
	}
}

// ToProfile returns every user field except the password
func ToProfile(user models.Record) models.Record {
	return user.Without(models.UserFieldPassword)
}
