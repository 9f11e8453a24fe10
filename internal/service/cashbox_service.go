package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jesusfb/carmu-api/internal/dto"
	"github.com/jesusfb/carmu-api/internal/model"
	"github.com/jesusfb/carmu-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// closeAttempts bounds the automatic retry of a close that hit a concurrency
// conflict before the error is surfaced to the caller.
const closeAttempts = 3

// ClosingNotifier enqueues the async closing-report job after a successful
// close. The service tolerates a nil notifier (reports disabled).
type ClosingNotifier interface {
	EnqueueClosingReport(ctx context.Context, recordID uuid.UUID) error
}

// CashboxService owns the register directory and the open → closed lifecycle.
// All money movement goes through here: the repositories hold no business
// rules.
type CashboxService interface {
	Create(ctx context.Context, req dto.NewCashboxRequest) (*dto.CashboxResponse, error)
	List(ctx context.Context) ([]dto.CashboxLite, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CashboxResponse, error)
	UpdateName(ctx context.Context, id uuid.UUID, req dto.UpdateCashboxRequest) (*dto.CashboxResponse, error)
	AssignUsers(ctx context.Context, id uuid.UUID, req dto.AssignUsersRequest) (*dto.CashboxResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Open(ctx context.Context, id uuid.UUID, req dto.OpenBoxRequest) (*dto.CashboxResponse, error)
	RecordTransaction(ctx context.Context, id uuid.UUID, req dto.NewTransactionRequest) (*dto.TransactionResponse, error)
	Close(ctx context.Context, id, userID uuid.UUID, req dto.CloseBoxRequest) (*dto.CloseBoxResponse, error)

	ListTransactions(ctx context.Context, id uuid.UUID) ([]dto.TransactionResponse, error)
	ListClosingRecords(ctx context.Context, boxID uuid.UUID) ([]dto.ClosingRecordResponse, error)
	ListAllClosingRecords(ctx context.Context, page, limit int) ([]dto.ClosingRecordResponse, int64, error)
}

type cashboxService struct {
	repo     repository.CashboxRepository
	users    repository.UserRepository
	notifier ClosingNotifier
	// locks serializes Open/RecordTransaction/Close per box id; operations
	// against different boxes never contend.
	locks sync.Map // uuid.UUID → *sync.Mutex
	now   func() time.Time
}

func NewCashboxService(repo repository.CashboxRepository, users repository.UserRepository, notifier ClosingNotifier) CashboxService {
	return &cashboxService{repo: repo, users: users, notifier: notifier, now: time.Now}
}

func (s *cashboxService) lockBox(id uuid.UUID) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// ─── Directory ───────────────────────────────────────────────────────────────

func (s *cashboxService) Create(ctx context.Context, req dto.NewCashboxRequest) (*dto.CashboxResponse, error) {
	box := &model.Cashbox{Name: strings.TrimSpace(req.Name)}

	if len(req.UserIDs) > 0 {
		ids, err := parseUUIDs(req.UserIDs)
		if err != nil {
			return nil, Invalid("userIds", "Identificador de usuario inválido")
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(users) != len(ids) {
			return nil, NotFound("Uno o más usuarios no existen")
		}
		box.Users = users
	}

	if err := s.repo.Create(ctx, box); err != nil {
		return nil, err
	}
	return s.Get(ctx, box.ID)
}

func (s *cashboxService) List(ctx context.Context) ([]dto.CashboxLite, error) {
	boxes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.CashboxLite, len(boxes))
	for i := range boxes {
		list[i] = mapCashboxLite(&boxes[i])
	}
	return list, nil
}

func (s *cashboxService) Get(ctx context.Context, id uuid.UUID) (*dto.CashboxResponse, error) {
	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, boxNotFound(err)
	}
	resp := mapCashbox(box)
	return &resp, nil
}

func (s *cashboxService) UpdateName(ctx context.Context, id uuid.UUID, req dto.UpdateCashboxRequest) (*dto.CashboxResponse, error) {
	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, boxNotFound(err)
	}
	box.Name = strings.TrimSpace(req.Name)
	if err := s.repo.Update(ctx, box); err != nil {
		return nil, err
	}
	resp := mapCashbox(box)
	return &resp, nil
}

func (s *cashboxService) AssignUsers(ctx context.Context, id uuid.UUID, req dto.AssignUsersRequest) (*dto.CashboxResponse, error) {
	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, boxNotFound(err)
	}
	ids, err := parseUUIDs(req.UserIDs)
	if err != nil {
		return nil, Invalid("userIds", "Identificador de usuario inválido")
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, NotFound("Uno o más usuarios no existen")
	}
	if err := s.repo.ReplaceUsers(ctx, box, users); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *cashboxService) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lockBox(id)
	defer unlock()

	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return boxNotFound(err)
	}
	if box.IsOpen() {
		return InvalidState("No se puede eliminar una caja abierta")
	}
	return s.repo.Delete(ctx, id)
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

func (s *cashboxService) Open(ctx context.Context, id uuid.UUID, req dto.OpenBoxRequest) (*dto.CashboxResponse, error) {
	unlock := s.lockBox(id)
	defer unlock()

	if req.Base.IsNegative() {
		return nil, Invalid("base", "La base no puede ser negativa")
	}
	cashierID, err := uuid.Parse(req.CashierID)
	if err != nil {
		return nil, Invalid("cashierId", "Identificador de cajero inválido")
	}

	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, boxNotFound(err)
	}
	if box.IsOpen() {
		return nil, InvalidState("La caja ya se encuentra abierta")
	}

	cashier, err := s.users.FindByID(ctx, cashierID)
	if err != nil {
		return nil, NotFound("Cajero no encontrado")
	}
	if !cashier.Enabled {
		return nil, Invalid("cashierId", "El cajero se encuentra deshabilitado")
	}

	now := s.now()
	box.CashierID = &cashier.ID
	box.Cashier = cashier
	box.CashierName = &cashier.Name
	box.Base = req.Base
	box.Balance = req.Base
	box.OpenedAt = &now
	box.ClosedAt = nil

	if err := s.repo.Update(ctx, box); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *cashboxService) RecordTransaction(ctx context.Context, id uuid.UUID, req dto.NewTransactionRequest) (*dto.TransactionResponse, error) {
	unlock := s.lockBox(id)
	defer unlock()

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, Invalid("description", "La descripción es requerida")
	}
	if !req.Amount.IsPositive() {
		return nil, Invalid("amount", "El importe debe ser mayor que cero")
	}

	box, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, boxNotFound(err)
	}
	if !box.IsOpen() {
		return nil, InvalidState("La caja no está abierta")
	}

	amount := req.Amount
	switch req.Kind {
	case "income":
	case "expense":
		amount = amount.Neg()
	default:
		return nil, Invalid("kind", "El tipo debe ser income o expense")
	}

	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	entry := &model.CashboxTransaction{
		CashboxID:       &box.ID,
		TransactionDate: date,
		Description:     description,
		Amount:          amount,
		IsTransfer:      req.IsTransfer,
	}
	box.Balance = box.Balance.Add(amount)

	if err := s.repo.AppendTransaction(ctx, box, entry); err != nil {
		return nil, err
	}
	resp := mapTransaction(entry)
	return &resp, nil
}

func (s *cashboxService) Close(ctx context.Context, id, userID uuid.UUID, req dto.CloseBoxRequest) (*dto.CloseBoxResponse, error) {
	unlock := s.lockBox(id)
	defer unlock()

	if req.Cash == nil {
		return nil, Invalid("cash", "El efectivo contado es requerido")
	}
	if req.Cash.IsNegative() {
		return nil, Invalid("cash", "El efectivo contado no puede ser negativo")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NotFound("Usuario no encontrado")
	}

	var lastErr error
	for attempt := 0; attempt < closeAttempts; attempt++ {
		box, record, err := s.closeOnce(ctx, id, user, req)
		switch {
		case err == nil:
			s.notifyClosing(record.ID)
			return &dto.CloseBoxResponse{Cashbox: mapCashbox(box), Closing: mapClosingRecord(record)}, nil
		case errors.Is(err, ErrConcurrencyConflict):
			lastErr = err
			continue
		default:
			return nil, err
		}
	}
	return nil, lastErr
}

// closeOnce performs one attempt of the atomic close sequence.
func (s *cashboxService) closeOnce(ctx context.Context, id uuid.UUID, user *model.User, req dto.CloseBoxRequest) (*model.Cashbox, *model.CashClosingRecord, error) {
	var opened time.Time

	box, record, err := s.repo.CloseSession(ctx, id, func(box *model.Cashbox, ledger []model.CashboxTransaction) (*model.CashClosingRecord, error) {
		if !box.IsOpen() {
			return nil, InvalidState("La caja no está abierta")
		}
		opened = *box.OpenedAt

		rec := Reconcile(box.Base, ledger, *req.Cash)
		now := s.now()

		cashierName := ""
		if box.CashierName != nil {
			cashierName = *box.CashierName
		}
		record := &model.CashClosingRecord{
			CashboxID:   &box.ID,
			UserID:      &user.ID,
			CashierID:   box.CashierID,
			BoxName:     box.Name,
			UserName:    user.Name,
			CashierName: cashierName,
			Opened:      opened,
			ClosingDate: now,
			Base:        box.Base,
			Incomes:     rec.Incomes,
			Expenses:    rec.Expenses,
			Cash:        *req.Cash,
			Leftover:    rec.Leftover,
			Missing:     rec.Missing,
			Coin:        req.Coin,
			Bills:       req.Bills,
			Observation: req.Observation,
		}

		box.ClosedAt = &now
		box.CashierID = nil
		box.Cashier = nil
		box.CashierName = nil
		box.Balance = decimal.Zero
		return record, nil
	})

	switch {
	case err == nil:
		return box, record, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil, NotFound("Caja no encontrada")
	case isDuplicateKey(err) && !opened.IsZero():
		// A previous attempt already sealed this session: return the
		// existing record instead of creating a second one.
		existing, findErr := s.repo.FindClosingBySession(ctx, id, opened)
		if findErr != nil {
			return nil, nil, err
		}
		current, findErr := s.repo.FindByID(ctx, id)
		if findErr != nil {
			return nil, nil, findErr
		}
		log.Warn().Str("cashbox_id", id.String()).Msg("close retry found an already sealed session")
		return current, existing, nil
	case isSerializationFailure(err):
		return nil, nil, ErrConcurrencyConflict
	default:
		return nil, nil, err
	}
}

func (s *cashboxService) notifyClosing(recordID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	// Fire-and-forget: the report job must never fail the close itself.
	if err := s.notifier.EnqueueClosingReport(context.Background(), recordID); err != nil {
		log.Error().Err(err).Str("closing_record_id", recordID.String()).Msg("failed to enqueue closing report")
	}
}

// ─── Ledger & history queries ────────────────────────────────────────────────

func (s *cashboxService) ListTransactions(ctx context.Context, id uuid.UUID) ([]dto.TransactionResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, boxNotFound(err)
	}
	txs, err := s.repo.ListTransactions(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapTransactions(txs), nil
}

func (s *cashboxService) ListClosingRecords(ctx context.Context, boxID uuid.UUID) ([]dto.ClosingRecordResponse, error) {
	if _, err := s.repo.FindByID(ctx, boxID); err != nil {
		return nil, boxNotFound(err)
	}
	recs, err := s.repo.ListClosingRecords(ctx, boxID)
	if err != nil {
		return nil, err
	}
	list := make([]dto.ClosingRecordResponse, len(recs))
	for i := range recs {
		list[i] = mapClosingRecord(&recs[i])
	}
	return list, nil
}

func (s *cashboxService) ListAllClosingRecords(ctx context.Context, page, limit int) ([]dto.ClosingRecordResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	recs, total, err := s.repo.ListAllClosingRecords(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	list := make([]dto.ClosingRecordResponse, len(recs))
	for i := range recs {
		list[i] = mapClosingRecord(&recs[i])
	}
	return list, total, nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func boxNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Caja no encontrada")
	}
	return err
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure / deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
