package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/shopspring/decimal"
)

// OutgoingTransaction is an append-only record of a sale.
// Rows are never updated or deleted once written.
type OutgoingTransaction struct {
	ID                int             `gorm:"primary_key" json:"id"`
	StoreId           string          `gorm:"index;not null" json:"store_id"`
	TransactionNumber string          `gorm:"size:64;not null" json:"transaction_number"`
	SequenceNo        int64           `gorm:"not null" json:"sequence_no"`
	ItemId            int             `gorm:"index;not null" json:"item_id"`
	ItemName          string          `gorm:"size:255;not null" json:"item_name"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	CustomerName      string          `gorm:"size:255" json:"customer_name"`
	SaleDate          time.Time       `gorm:"index;not null" json:"sale_date"`
	PaymentMethod     PaymentMethod   `gorm:"size:10;not null" json:"payment_method"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CorrelationId     string          `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewOutgoingTransaction struct {
	ItemId        int             `json:"item_id"`
	Quantity      int             `json:"quantity"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CustomerName  string          `json:"customer_name"`
	SaleDate      string          `json:"sale_date"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// Well-formedness is checked strictly before the stock-sufficiency check:
// a non-positive quantity is a ValidationError, never InsufficientStock.
func (input *NewOutgoingTransaction) validate() (time.Time, PaymentMethod, error) {
	verr := &ValidationError{}
	if input.ItemId <= 0 {
		verr.Add("item is required")
	}
	if input.Quantity <= 0 {
		verr.Add("quantity must be a positive integer")
	}
	if input.SellingPrice.IsNegative() {
		verr.Add("selling price must not be negative")
	}

	paymentMethod := PaymentMethodCash
	if input.PaymentMethod != "" {
		parsed, err := ParsePaymentMethod(input.PaymentMethod)
		if err != nil {
			verr.Add("payment method must be one of cash, card, credit")
		} else {
			paymentMethod = parsed
		}
	}

	saleAt := time.Now().UTC()
	if input.SaleDate != "" {
		parsed, err := utils.ParseDateString(input.SaleDate)
		if err != nil {
			verr.Add("sale date must be a valid date (YYYY-MM-DD)")
		} else {
			saleAt = parsed
		}
	}

	if err := verr.OrNil(); err != nil {
		return time.Time{}, "", err
	}
	return saleAt, paymentMethod, nil
}

// CreateOutgoingTransaction books a sale: one database transaction locks the
// item row, verifies sufficient stock, applies -quantity and appends the
// ledger record. On InsufficientStock nothing is written; the error carries
// the on-hand and requested counts for the caller's message.
func CreateOutgoingTransaction(ctx context.Context, input *NewOutgoingTransaction) (*OutgoingTransaction, error) {

	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	saleAt, paymentMethod, err := input.validate()
	if err != nil {
		return nil, err
	}

	release, err := utils.StoreLock(ctx, storeId, "LedgerWrite", "outgoingTransaction.go", "CreateOutgoingTransaction")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.Begin()

	item, err := ApplyStockDelta(tx, ctx, storeId, input.ItemId, -input.Quantity, time.Now().UTC())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	seqNo, err := utils.GetSequence[OutgoingTransaction](tx, ctx, storeId)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	transaction := OutgoingTransaction{
		StoreId:           storeId,
		TransactionNumber: "OUT-" + fmt.Sprint(seqNo),
		SequenceNo:        seqNo,
		ItemId:            item.ID,
		ItemName:          item.Name,
		Quantity:          input.Quantity,
		SellingPrice:      input.SellingPrice,
		TotalAmount:       input.SellingPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		CustomerName:      input.CustomerName,
		SaleDate:          saleAt,
		PaymentMethod:     paymentMethod,
		Notes:             input.Notes,
		CorrelationId:     correlationIdFromContextOrNew(ctx),
	}
	if err := tx.WithContext(ctx).Create(&transaction).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// ListOutgoingTransactions returns the sale history, most recent first.
func ListOutgoingTransactions(ctx context.Context) ([]*OutgoingTransaction, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	db := config.GetDB()
	var results []*OutgoingTransaction
	if err := db.WithContext(ctx).Where("store_id = ?", storeId).
		Order("sale_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
