package service

import (
	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/model"
)

func mapCashboxLite(box *model.Cashbox) dto.CashboxLite {
	lite := dto.CashboxLite{
		ID:          box.ID.String(),
		Name:        box.Name,
		CashierName: box.CashierName,
		Users:       mapUserIDs(box.Users),
		Base:        box.Base,
		Balance:     box.Balance,
		OpenBox:     box.OpenedAt,
		Closed:      box.ClosedAt,
		CreatedAt:   box.CreatedAt,
		UpdatedAt:   box.UpdatedAt,
	}
	if box.Cashier != nil {
		lite.Cashier = &dto.CashierRef{ID: box.Cashier.ID.String(), Name: box.Cashier.Name}
	}
	return lite
}

func mapCashbox(box *model.Cashbox) dto.CashboxResponse {
	resp := dto.CashboxResponse{
		ID:             box.ID.String(),
		Name:           box.Name,
		Users:          mapUserIDs(box.Users),
		Base:           box.Base,
		Balance:        box.Balance,
		OpenBox:        box.OpenedAt,
		Closed:         box.ClosedAt,
		Transactions:   mapTransactions(box.Transactions),
		ClosingRecords: make([]string, len(box.ClosingRecords)),
		CreatedAt:      box.CreatedAt,
		UpdatedAt:      box.UpdatedAt,
	}
	if box.Cashier != nil {
		resp.Cashier = &dto.CashierRef{ID: box.Cashier.ID.String(), Name: box.Cashier.Name}
	}
	for i := range box.ClosingRecords {
		resp.ClosingRecords[i] = box.ClosingRecords[i].ID.String()
	}
	// Records are preloaded in closing-date order; the newest one drives the
	// "last closing" hint shown in the register directory.
	if n := len(box.ClosingRecords); n > 0 {
		resp.LastClosing = &box.ClosingRecords[n-1].ClosingDate
	}
	return resp
}

func mapUserIDs(users []model.User) []string {
	ids := make([]string, len(users))
	for i := range users {
		ids[i] = users[i].ID.String()
	}
	return ids
}

func mapTransaction(tx *model.CashboxTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              tx.ID.String(),
		TransactionDate: tx.TransactionDate,
		Description:     tx.Description,
		Amount:          tx.Amount,
		IsTransfer:      tx.IsTransfer,
		CreatedAt:       tx.CreatedAt,
	}
}

func mapTransactions(txs []model.CashboxTransaction) []dto.TransactionResponse {
	list := make([]dto.TransactionResponse, len(txs))
	for i := range txs {
		list[i] = mapTransaction(&txs[i])
	}
	return list
}

func mapClosingRecord(rec *model.CashClosingRecord) dto.ClosingRecordResponse {
	resp := dto.ClosingRecordResponse{
		ID:          rec.ID.String(),
		BoxName:     rec.BoxName,
		UserName:    rec.UserName,
		CashierName: rec.CashierName,
		Opened:      rec.Opened,
		ClosingDate: rec.ClosingDate,
		Base:        rec.Base,
		Incomes:     rec.Incomes,
		Expenses:    rec.Expenses,
		Cash:        rec.Cash,
		Coin:        rec.Coin,
		Bills:       rec.Bills,
		Leftover:    rec.Leftover,
		Missing:     rec.Missing,
		Observation: rec.Observation,
		Transaction: mapTransactions(rec.Transactions),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.CashboxID != nil {
		id := rec.CashboxID.String()
		resp.Cashbox = &id
	}
	if rec.UserID != nil {
		id := rec.UserID.String()
		resp.User = &id
	}
	if rec.CashierID != nil {
		id := rec.CashierID.String()
		resp.Cashier = &id
	}
	return resp
}

func mapUser(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
