package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shakotgabriel/tanina/internal/core/domain"
)

// LedgerReader defines read operations over completed transaction records.
type LedgerReader interface {
	// FindTransactionByID retrieves a transaction with its entries.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByReference retrieves a transaction by its unique
	// reference.
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// ListTransactionsByWalletID retrieves transactions in which the wallet
	// appears as a debit or credit participant, newest first, with nested
	// entries and token-based pagination.
	ListTransactionsByWalletID(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriter defines the ledger's atomic unit of work.
type LedgerWriter interface {
	// SaveTransaction persists a transaction with its debit/credit entries
	// and applies the given wallet balance deltas, all within one database
	// transaction: the transaction row is inserted PENDING, affected balance
	// rows are locked, resulting availability is verified non-negative,
	// deltas are applied, entries inserted, and the row marked COMPLETED.
	// Any failure rolls back the entire unit of work; no partial state is
	// ever durably visible. Returns the completed transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.Entry, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
