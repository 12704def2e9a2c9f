package domain

import "errors"

const (
	StatusNone       = ""
	StatusVegetarian = "vegetarian"
	StatusVegan      = "vegan"
)

var (
	MessageSuccessGetProfile     = "profile retrieved successfully"
	MessageSuccessUpdateProfile  = "profile updated successfully"
	MessageSuccessClearAllergies = "allergies cleared"
	MessageSuccessClearDislikes  = "dislikes cleared"

	MessageFailedGetProfile    = "failed to retrieve profile"
	MessageFailedUpdateProfile = "failed to update profile"

	ErrInvalidStatus = errors.New("status must be one of none, vegetarian, vegan")
)

type (
	ProfileResponse struct {
		Allergies []string `json:"allergies"`
		Dislikes  []string `json:"dislikes"`
		Status    string   `json:"status"`
	}

	UpdateTokensRequest struct {
		Items string `json:"items" validate:"required"`
	}

	SetStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}
)
