package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddProducts  = "products added to fridge"
	MessageSuccessGetFridge    = "fridge contents retrieved successfully"
	MessageSuccessDeleteEntry  = "product removed from fridge"
	MessageSuccessConsumeEntry = "product quantity updated"
	MessageSuccessGetExpiring  = "expiring products retrieved successfully"

	MessageFailedAddProducts  = "failed to add products"
	MessageFailedGetFridge    = "failed to retrieve fridge contents"
	MessageFailedDeleteEntry  = "failed to remove product"
	MessageFailedConsumeEntry = "failed to update product quantity"
	MessageFailedGetExpiring  = "failed to retrieve expiring products"

	ErrEntryNotFound        = errors.New("product entry not found")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInsufficientQuantity = errors.New("amount exceeds available quantity")
)

type (
	AddProductsRequest struct {
		Text string `json:"text" validate:"required"`
	}

	AddProductsResponse struct {
		EntriesStored int `json:"entries_stored"`
	}

	ProductEntryResponse struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		Quantity   float64    `json:"quantity"`
		Unit       string     `json:"unit"`
		ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	}

	ConsumeEntryRequest struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}

	ConsumeEntryResponse struct {
		Deleted   bool    `json:"deleted"`
		Remaining float64 `json:"remaining"`
		Unit      string  `json:"unit"`
	}
)
