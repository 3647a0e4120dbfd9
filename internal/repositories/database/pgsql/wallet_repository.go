package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shakotgabriel/tanina/internal/apperrors"
	"github.com/shakotgabriel/tanina/internal/core/domain"
	portsrepo "github.com/shakotgabriel/tanina/internal/core/ports/repositories"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, account_id, user_id, currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(
		&w.WalletID,
		&w.AccountID,
		&w.UserID,
		&w.Currency,
		&w.IsActive,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindWalletByID retrieves a wallet by its identifier.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = $1;
	`
	w, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find wallet by ID "+walletID, err)
	}
	return w, nil
}

// FindActiveWalletByAccountAndCurrency retrieves the account's single
// active wallet of the given currency.
func (r *PgxWalletRepository) FindActiveWalletByAccountAndCurrency(ctx context.Context, accountID string, currency domain.CurrencyCode) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE account_id = $1 AND currency_code = $2 AND is_active = TRUE;
	`
	w, err := scanWallet(r.Pool.QueryRow(ctx, query, accountID, currency))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to find active wallet for account "+accountID, err)
	}
	return w, nil
}

// FindActiveWalletsByAccountID retrieves all active wallets under an
// account, oldest first so the signup default wallet leads.
func (r *PgxWalletRepository) FindActiveWalletsByAccountID(ctx context.Context, accountID string) ([]domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE account_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallets for account "+accountID, err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan wallet row", err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed reading wallet rows", err)
	}
	return wallets, nil
}

// SaveWalletWithBalance persists a new wallet and its zeroed balance row in
// one database transaction. A second active wallet in the same currency
// violates the partial unique index and surfaces as a duplicate.
func (r *PgxWalletRepository) SaveWalletWithBalance(ctx context.Context, wallet domain.Wallet, balance domain.Balance) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertWalletInTx(ctx, tx, wallet); err != nil {
		return err
	}
	if err := insertBalanceInTx(ctx, tx, balance); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertWalletInTx(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error {
	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		wallet.WalletID,
		wallet.AccountID,
		wallet.UserID,
		wallet.Currency,
		wallet.IsActive,
		wallet.CreatedAt,
		wallet.CreatedBy,
		wallet.LastUpdatedAt,
		wallet.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return apperrors.NewAppError(409, "active wallet for this currency already exists", mapped)
		}
		return apperrors.NewAppError(500, "failed to insert wallet "+wallet.WalletID, err)
	}
	return nil
}
