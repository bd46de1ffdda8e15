package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomingTransaction is an append-only record of stock received.
// Rows are never updated or deleted once written.
type IncomingTransaction struct {
	ID                int             `gorm:"primary_key" json:"id"`
	StoreId           string          `gorm:"index;not null" json:"store_id"`
	TransactionNumber string          `gorm:"size:64;not null" json:"transaction_number"`
	SequenceNo        int64           `gorm:"not null" json:"sequence_no"`
	ItemId            int             `gorm:"index;not null" json:"item_id"`
	ItemName          string          `gorm:"size:255;not null" json:"item_name"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	TotalCost         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_cost"`
	Supplier          string          `gorm:"size:255" json:"supplier"`
	InvoiceNumber     string          `gorm:"size:255" json:"invoice_number"`
	ReceivedDate      time.Time       `gorm:"index;not null" json:"received_date"`
	Notes             string          `gorm:"type:text" json:"notes"`
	CorrelationId     string          `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewIncomingTransaction struct {
	ItemId        int             `json:"item_id"`
	Quantity      int             `json:"quantity"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	Supplier      string          `json:"supplier"`
	InvoiceNumber string          `json:"invoice_number"`
	ReceivedDate  string          `json:"received_date"`
	Notes         string          `json:"notes"`
}

type IncomingMetadata struct {
	Supplier      string
	InvoiceNumber string
	Notes         string
}

// Well-formedness is checked strictly before any stock work, so a bad
// quantity surfaces as a ValidationError, never as InsufficientStock.
func (input *NewIncomingTransaction) validate() (time.Time, error) {
	verr := &ValidationError{}
	if input.ItemId <= 0 {
		verr.Add("item is required")
	}
	if input.Quantity <= 0 {
		verr.Add("quantity must be a positive integer")
	}
	if input.CostPrice.IsNegative() {
		verr.Add("cost price must not be negative")
	}

	receivedAt := time.Now().UTC()
	if input.ReceivedDate != "" {
		parsed, err := utils.ParseDateString(input.ReceivedDate)
		if err != nil {
			verr.Add("received date must be a valid date (YYYY-MM-DD)")
		} else {
			receivedAt = parsed
		}
	}

	if err := verr.OrNil(); err != nil {
		return time.Time{}, err
	}
	return receivedAt, nil
}

// CreateIncomingTransaction books received stock: one database transaction
// locks the item row, applies +quantity and appends the ledger record.
// Either both writes commit or neither does.
func CreateIncomingTransaction(ctx context.Context, input *NewIncomingTransaction) (*IncomingTransaction, error) {

	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	receivedAt, err := input.validate()
	if err != nil {
		return nil, err
	}

	release, err := utils.StoreLock(ctx, storeId, "LedgerWrite", "incomingTransaction.go", "CreateIncomingTransaction")
	if err != nil {
		return nil, err
	}
	defer release()

	db := config.GetDB()
	tx := db.Begin()

	item, err := ApplyStockDelta(tx, ctx, storeId, input.ItemId, input.Quantity, time.Now().UTC())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	transaction, err := appendIncoming(tx, ctx, storeId, item, input.Quantity, input.CostPrice, IncomingMetadata{
		Supplier:      input.Supplier,
		InvoiceNumber: input.InvoiceNumber,
		Notes:         input.Notes,
	}, receivedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// appendIncoming writes the ledger record inside the caller's transaction.
// The item quantity must already reflect this receipt (or, for opening
// stock, have been created with it).
func appendIncoming(tx *gorm.DB, ctx context.Context, storeId string, item *Item, quantity int, costPrice decimal.Decimal, meta IncomingMetadata, receivedAt time.Time) (*IncomingTransaction, error) {

	seqNo, err := utils.GetSequence[IncomingTransaction](tx, ctx, storeId)
	if err != nil {
		return nil, err
	}

	transaction := IncomingTransaction{
		StoreId:           storeId,
		TransactionNumber: "IN-" + fmt.Sprint(seqNo),
		SequenceNo:        seqNo,
		ItemId:            item.ID,
		ItemName:          item.Name,
		Quantity:          quantity,
		CostPrice:         costPrice,
		TotalCost:         costPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Supplier:          meta.Supplier,
		InvoiceNumber:     meta.InvoiceNumber,
		ReceivedDate:      receivedAt,
		Notes:             meta.Notes,
		CorrelationId:     correlationIdFromContextOrNew(ctx),
	}
	if err := tx.WithContext(ctx).Create(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// ListIncomingTransactions returns the receipt history, most recent first.
func ListIncomingTransactions(ctx context.Context) ([]*IncomingTransaction, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	db := config.GetDB()
	var results []*IncomingTransaction
	if err := db.WithContext(ctx).Where("store_id = ?", storeId).
		Order("received_date DESC, id DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
