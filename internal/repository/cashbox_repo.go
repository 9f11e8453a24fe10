package repository

import (
	"context"
	"time"

	"github.com/jesusfb/carmu-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CashboxRepository defines data access for cashboxes, their session ledgers
// and closing records.
type CashboxRepository interface {
	Create(ctx context.Context, box *model.Cashbox) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cashbox, error)
	List(ctx context.Context) ([]model.Cashbox, error)
	Update(ctx context.Context, box *model.Cashbox) error
	ReplaceUsers(ctx context.Context, box *model.Cashbox, users []model.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendTransaction persists a new ledger entry together with the box's
	// updated balance in one transaction.
	AppendTransaction(ctx context.Context, box *model.Cashbox, tx *model.CashboxTransaction) error
	ListTransactions(ctx context.Context, boxID uuid.UUID) ([]model.CashboxTransaction, error)

	// CloseSession runs the whole close sequence atomically: the box row is
	// locked FOR UPDATE, the live ledger is read, and the seal callback
	// validates state, computes the reconciliation, mutates the box to its
	// closed shape and returns the record to persist. Record creation, ledger
	// re-parenting and the box update commit together or not at all.
	CloseSession(ctx context.Context, boxID uuid.UUID, seal CloseFunc) (*model.Cashbox, *model.CashClosingRecord, error)

	FindClosingByID(ctx context.Context, id uuid.UUID) (*model.CashClosingRecord, error)
	FindClosingBySession(ctx context.Context, boxID uuid.UUID, opened time.Time) (*model.CashClosingRecord, error)
	ListClosingRecords(ctx context.Context, boxID uuid.UUID) ([]model.CashClosingRecord, error)
	ListAllClosingRecords(ctx context.Context, offset, limit int) ([]model.CashClosingRecord, int64, error)
}

// CloseFunc seals a session: it receives the locked box and its live ledger
// and returns the closing record to persist.
type CloseFunc func(box *model.Cashbox, txs []model.CashboxTransaction) (*model.CashClosingRecord, error)

type cashboxRepo struct{ db *gorm.DB }

func NewCashboxRepository(db *gorm.DB) CashboxRepository { return &cashboxRepo{db: db} }

func (r *cashboxRepo) Create(ctx context.Context, box *model.Cashbox) error {
	return r.db.WithContext(ctx).Create(box).Error
}

func (r *cashboxRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cashbox, error) {
	var box model.Cashbox
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("Users").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("ClosingRecords", func(db *gorm.DB) *gorm.DB { return db.Order("closing_date ASC") }).
		First(&box, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *cashboxRepo) List(ctx context.Context) ([]model.Cashbox, error) {
	var boxes []model.Cashbox
	err := r.db.WithContext(ctx).
		Preload("Cashier").
		Preload("Users").
		Order("name asc").
		Find(&boxes).Error
	return boxes, err
}

func (r *cashboxRepo) Update(ctx context.Context, box *model.Cashbox) error {
	return r.db.WithContext(ctx).Omit("Users", "Transactions", "ClosingRecords", "Cashier").Save(box).Error
}

func (r *cashboxRepo) ReplaceUsers(ctx context.Context, box *model.Cashbox, users []model.User) error {
	return r.db.WithContext(ctx).Model(box).Association("Users").Replace(users)
}

func (r *cashboxRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM cashbox_users WHERE cashbox_id = ?`, id).Error; err != nil {
			return err
		}
		// Historical closing records keep their box reference nulled, not erased.
		if err := tx.Model(&model.CashClosingRecord{}).Where("cashbox_id = ?", id).
			Update("cashbox_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cashbox{}, "id = ?", id).Error
	})
}

func (r *cashboxRepo) AppendTransaction(ctx context.Context, box *model.Cashbox, entry *model.CashboxTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&model.Cashbox{}).Where("id = ?", box.ID).
			Update("balance", box.Balance).Error
	})
}

func (r *cashboxRepo) ListTransactions(ctx context.Context, boxID uuid.UUID) ([]model.CashboxTransaction, error) {
	var txs []model.CashboxTransaction
	err := r.db.WithContext(ctx).
		Where("cashbox_id = ?", boxID).
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}

func (r *cashboxRepo) CloseSession(ctx context.Context, boxID uuid.UUID, seal CloseFunc) (*model.Cashbox, *model.CashClosingRecord, error) {
	var box model.Cashbox
	var record *model.CashClosingRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&box, "id = ?", boxID).Error; err != nil {
			return err
		}

		var ledger []model.CashboxTransaction
		if err := tx.Where("cashbox_id = ?", boxID).
			Order("created_at ASC").
			Find(&ledger).Error; err != nil {
			return err
		}

		sealed, err := seal(&box, ledger)
		if err != nil {
			return err
		}

		if err := tx.Omit("Transactions").Create(sealed).Error; err != nil {
			return err
		}
		// Ownership of the session ledger moves to the closing record.
		if err := tx.Model(&model.CashboxTransaction{}).
			Where("cashbox_id = ?", boxID).
			Updates(map[string]interface{}{"closing_record_id": sealed.ID, "cashbox_id": nil}).Error; err != nil {
			return err
		}
		for i := range ledger {
			ledger[i].CashboxID = nil
			ledger[i].ClosingRecordID = &sealed.ID
		}
		sealed.Transactions = ledger
		record = sealed
		return tx.Omit("Users", "Transactions", "ClosingRecords", "Cashier").Save(&box).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &box, record, nil
}

func (r *cashboxRepo) FindClosingByID(ctx context.Context, id uuid.UUID) (*model.CashClosingRecord, error) {
	var rec model.CashClosingRecord
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *cashboxRepo) FindClosingBySession(ctx context.Context, boxID uuid.UUID, opened time.Time) (*model.CashClosingRecord, error) {
	var rec model.CashClosingRecord
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("cashbox_id = ? AND opened = ?", boxID, opened).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *cashboxRepo) ListClosingRecords(ctx context.Context, boxID uuid.UUID) ([]model.CashClosingRecord, error) {
	var recs []model.CashClosingRecord
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("cashbox_id = ?", boxID).
		Order("closing_date ASC").
		Find(&recs).Error
	return recs, err
}

func (r *cashboxRepo) ListAllClosingRecords(ctx context.Context, offset, limit int) ([]model.CashClosingRecord, int64, error) {
	var recs []model.CashClosingRecord
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.CashClosingRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("closing_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&recs).Error
	return recs, total, err
}
