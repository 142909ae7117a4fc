package services

import (
	"context"
	"fmt"

	appContext "roomkeeper/internal/context"
	"roomkeeper/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// TransactionService runs a function inside a database transaction. The
// transaction handle travels in the context, so every repository call made
// by the function joins the same transaction without plumbing *gorm.DB
// through signatures.
type TransactionService struct {
	db  database.DB
	log logger.Logger
}

func NewTransactionService(db database.DB) *TransactionService {
	return &TransactionService{
		db:  db,
		log: logger.New("transactionService"),
	}
}

// Execute begins a transaction, injects it into the context, and commits
// or rolls back based on the function result. Panics are converted to
// errors unless rollback fails, in which case the process crashes for
// data safety.
func (ts *TransactionService) Execute(
	ctx context.Context,
	fn func(ctx context.Context) error,
) (err error) {
	log := ts.log.Function("Execute")

	tx := ts.db.SQLWithContext(ctx).Begin()
	if tx.Error != nil {
		return log.Err("failed to begin transaction", tx.Error)
	}

	txCtx := appContext.WithTransaction(ctx, tx)

	defer func() {
		if r := recover(); r != nil {
			panicErr := log.ErrMsg("panic during transaction: " + fmt.Sprintf("%v", r))

			if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
				log.Er("CRITICAL: failed to rollback after panic", rollbackErr, "panic", r)
				panic(fmt.Sprintf(
					"transaction rollback failed: %v (original panic: %v)",
					rollbackErr, r,
				))
			}

			err = panicErr
		}
	}()

	if err = fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			return log.Error("transaction rollback failed",
				"rollbackError", rollbackErr, "originalError", err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return log.Err("failed to commit transaction", err)
	}

	return nil
}
