package pgsql

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
	"github.com/shakotgabriel/tanina/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	balanceRepo portsrepo.BalanceRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for transaction and entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool, balanceRepo portsrepo.BalanceRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const transactionColumns = `transaction_id, reference, transaction_type, status, amount, source_currency, target_currency, exchange_rate, description, user_id, account_id, wallet_id, completed_at, created_at, created_by, last_updated_at, last_updated_by`

const entryColumns = `entry_id, transaction_id, wallet_id, entry_type, amount, description, created_at, created_by, last_updated_at, last_updated_by`

// SaveTransaction persists a transaction with its entries and applies the
// wallet balance deltas within one database transaction. The row is
// inserted PENDING, affected balances are locked in sorted order, the
// resulting availability of every debited wallet is verified non-negative,
// deltas are applied, entries batch-inserted, and the row flipped to
// COMPLETED. Any failure rolls the whole unit of work back.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := txn.CreatedAt
	userID := txn.CreatedBy

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertQuery,
		txn.TransactionID,
		txn.Reference,
		txn.Type,
		domain.Pending,
		txn.Amount,
		txn.SourceCurrency,
		txn.TargetCurrency,
		txn.ExchangeRate,
		txn.Description,
		txn.UserID,
		txn.AccountID,
		txn.WalletID,
		nil,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "transaction reference already used", mapped)
		}
		return nil, apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, mapPgError(err))
	}

	// Lock affected wallet balances in sorted order.
	walletIDs := make([]string, 0, len(balanceChanges))
	for walletID := range balanceChanges {
		walletIDs = append(walletIDs, walletID)
	}
	sort.Strings(walletIDs)

	lockedBalances, err := r.balanceRepo.FindBalancesByWalletIDsForUpdate(ctx, tx, walletIDs)
	if err != nil {
		return nil, err
	}

	// The binding funds check: with the rows locked, the post-apply
	// availability of every wallet must be non-negative.
	for _, walletID := range walletIDs {
		delta := balanceChanges[walletID]
		resulting := lockedBalances[walletID].Available.Add(delta)
		if resulting.IsNegative() {
			return nil, apperrors.NewAppError(422, "Insufficient funds", apperrors.ErrInsufficientFunds)
		}
	}

	if err := r.balanceRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, err
	}

	entryQuery := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(entryQuery,
			entry.EntryID,
			entry.TransactionID,
			entry.WalletID,
			entry.EntryType,
			entry.Amount,
			entry.Description,
			entry.CreatedAt,
			entry.CreatedBy,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert entries for transaction "+txn.TransactionID, mapPgError(err))
	}

	completedAt := time.Now().UTC()
	completeQuery := `
		UPDATE transactions
		SET status = $2, completed_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, completeQuery, txn.TransactionID, domain.Completed, completedAt, userID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to complete transaction "+txn.TransactionID, mapPgError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	txn.Status = domain.Completed
	txn.CompletedAt = &completedAt
	txn.LastUpdatedAt = completedAt
	txn.Entries = entries
	return &txn, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.Reference,
		&t.Type,
		&t.Status,
		&t.Amount,
		&t.SourceCurrency,
		&t.TargetCurrency,
		&t.ExchangeRate,
		&t.Description,
		&t.UserID,
		&t.AccountID,
		&t.WalletID,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindTransactionByID retrieves a transaction with its entries.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	entries, err := r.findEntriesByTransactionIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	txn.Entries = entries[transactionID]
	return txn, nil
}

// FindTransactionByReference retrieves a transaction by its unique reference.
func (r *PgxLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE reference = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by reference", err)
	}

	entries, err := r.findEntriesByTransactionIDs(ctx, []string{txn.TransactionID})
	if err != nil {
		return nil, err
	}
	txn.Entries = entries[txn.TransactionID]
	return txn, nil
}

// ListTransactionsByWalletID retrieves transactions in which the wallet
// appears as a participant, newest first, with nested entries and
// token-based pagination ordered by (created_at DESC, transaction_id DESC).
func (r *PgxLedgerRepository) ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT DISTINCT t.transaction_id, t.reference, t.transaction_type, t.status, t.amount, t.source_currency, t.target_currency, t.exchange_rate, t.description, t.user_id, t.account_id, t.wallet_id, t.completed_at, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM transactions t
		JOIN entries e ON e.transaction_id = t.transaction_id
		WHERE e.wallet_id = $1
	`
	args := []any{walletID}

	if nextToken != nil && *nextToken != "" {
		createdAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", err)
		}
		query += ` AND (t.created_at, t.transaction_id) < ($2, $3)`
		args = append(args, createdAt, lastID)
	}

	// Fetch one extra row to know whether another page exists.
	query += ` ORDER BY t.created_at DESC, t.transaction_id DESC LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for wallet "+walletID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed reading transaction rows", err)
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		t := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		token = &t
	}

	if len(txns) > 0 {
		ids := make([]string, len(txns))
		for i := range txns {
			ids[i] = txns[i].TransactionID
		}
		entriesByTxn, err := r.findEntriesByTransactionIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range txns {
			txns[i].Entries = entriesByTxn[txns[i].TransactionID]
		}
	}

	return txns, token, nil
}

func (r *PgxLedgerRepository) findEntriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE transaction_id = ANY($1)
		ORDER BY created_at ASC, entry_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entriesByTxn := make(map[string][]domain.Entry)
	for rows.Next() {
		var e domain.Entry
		err := rows.Scan(
			&e.EntryID,
			&e.TransactionID,
			&e.WalletID,
			&e.EntryType,
			&e.Amount,
			&e.Description,
			&e.CreatedAt,
			&e.CreatedBy,
			&e.LastUpdatedAt,
			&e.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entriesByTxn[e.TransactionID] = append(entriesByTxn[e.TransactionID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading entry rows", err)
	}
	return entriesByTxn, nil
}
