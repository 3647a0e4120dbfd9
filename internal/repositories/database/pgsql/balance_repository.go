package pgsql

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for balance data.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

const balanceColumns = `balance_id, balance_type, account_id, wallet_id, available, pending, reserved, currency_code, created_at, created_by, last_updated_at, last_updated_by`

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var b domain.Balance
	var accountID, walletID *string
	err := row.Scan(
		&b.BalanceID,
		&b.BalanceType,
		&accountID,
		&walletID,
		&b.Available,
		&b.Pending,
		&b.Reserved,
		&b.Currency,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if accountID != nil {
		b.AccountID = *accountID
	}
	if walletID != nil {
		b.WalletID = *walletID
	}
	return &b, nil
}

func insertBalanceInTx(ctx context.Context, tx pgx.Tx, balance domain.Balance) error {
	query := `
		INSERT INTO balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var accountID, walletID *string
	if balance.AccountID != "" {
		accountID = &balance.AccountID
	}
	if balance.WalletID != "" {
		walletID = &balance.WalletID
	}
	_, err := tx.Exec(ctx, query,
		balance.BalanceID,
		balance.BalanceType,
		accountID,
		walletID,
		balance.Available,
		balance.Pending,
		balance.Reserved,
		balance.Currency,
		balance.CreatedAt,
		balance.CreatedBy,
		balance.LastUpdatedAt,
		balance.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert balance "+balance.BalanceID, mapPgError(err))
	}
	return nil
}

// FindBalanceByWalletID retrieves the balance row attached to a wallet.
func (r *PgxBalanceRepository) FindBalanceByWalletID(ctx context.Context, walletID string) (*domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE wallet_id = $1 AND balance_type = $2;
	`
	b, err := scanBalance(r.Pool.QueryRow(ctx, query, walletID, domain.WalletBalanceType))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for wallet "+walletID, err)
	}
	return b, nil
}

// FindBalanceByAccountID retrieves the account-level balance row.
func (r *PgxBalanceRepository) FindBalanceByAccountID(ctx context.Context, accountID string) (*domain.Balance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE account_id = $1 AND balance_type = $2;
	`
	b, err := scanBalance(r.Pool.QueryRow(ctx, query, accountID, domain.AccountBalanceType))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find balance for account "+accountID, err)
	}
	return b, nil
}

// FindBalancesByWalletIDsForUpdate retrieves wallet balance rows and locks
// them for update. Must be called within a transaction. Every requested
// wallet must resolve to a row or the call fails with not-found.
func (r *PgxBalanceRepository) FindBalancesByWalletIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Balance, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Balance{}, nil
	}

	query := `
		SELECT ` + balanceColumns + `
		FROM balances
		WHERE wallet_id = ANY($1) AND balance_type = $2
		ORDER BY wallet_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, walletIDs, domain.WalletBalanceType)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balances for update", mapPgError(err))
	}
	defer rows.Close()

	balancesMap := make(map[string]domain.Balance, len(walletIDs))
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked balance row", err)
		}
		balancesMap[b.WalletID] = *b
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading locked balance rows", mapPgError(err))
	}

	for _, id := range walletIDs {
		if _, ok := balancesMap[id]; !ok {
			return nil, apperrors.NewNotFoundError("balance not found for wallet " + id)
		}
	}
	return balancesMap, nil
}

// ApplyBalanceChangesInTx applies signed available-amount deltas to wallet
// balance rows previously locked in the same transaction. Each delta is
// mirrored into the owning account's balance row when the wallet's currency
// matches the account's primary currency, keeping the account aggregate
// consistent. Wallets are processed in sorted order so concurrent units of
// work take row locks in the same sequence.
func (r *PgxBalanceRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	walletQuery := `
		UPDATE balances
		SET available = available + $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1 AND balance_type = $5;
	`
	accountQuery := `
		UPDATE balances b
		SET available = b.available + $2, last_updated_at = $3, last_updated_by = $4
		FROM wallets w
		JOIN accounts a ON a.account_id = w.account_id
		WHERE w.wallet_id = $1
		  AND b.account_id = w.account_id
		  AND b.balance_type = $5
		  AND w.currency_code = a.currency_code;
	`
	walletIDs := make([]string, 0, len(changes))
	for walletID := range changes {
		walletIDs = append(walletIDs, walletID)
	}
	sort.Strings(walletIDs)

	batch := &pgx.Batch{}
	for _, walletID := range walletIDs {
		delta := changes[walletID]
		batch.Queue(walletQuery, walletID, delta, now, userID, domain.WalletBalanceType)
		batch.Queue(accountQuery, walletID, delta, now, userID, domain.AccountBalanceType)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to apply balance changes", mapPgError(err))
	}
	return nil
}
