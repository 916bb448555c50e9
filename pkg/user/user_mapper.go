package user

import (
	"foodgram/domain"
	"foodgram/entities"
)

func ToUserResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	if user == nil {
		return domain.UserResponse{}
	}
	return domain.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
