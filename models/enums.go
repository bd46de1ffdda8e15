package models

import "errors"

type StockStatus string

const (
	StockStatusLow    StockStatus = "low"
	StockStatusMedium StockStatus = "medium"
	StockStatusGood   StockStatus = "good"
)

func ParseStockStatus(s string) (StockStatus, error) {
	switch s {
	case "low":
		return StockStatusLow, nil
	case "medium":
		return StockStatusMedium, nil
	case "good":
		return StockStatusGood, nil
	default:
		return "", errors.New("invalid stock status")
	}
}

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCredit PaymentMethod = "credit"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "cash":
		return PaymentMethodCash, nil
	case "card":
		return PaymentMethodCard, nil
	case "credit":
		return PaymentMethodCredit, nil
	default:
		return "", errors.New("invalid payment method")
	}
}
