package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos bundles the repositories bound to one open transaction. Everything
// staged through them commits or rolls back together.
type TxRepos struct {
	Items    ItemRepository
	Teachers TeacherRepository
	Issues   IssueRepository
	Logs     InventoryLogRepository
}

// TxRunner executes a callback inside a single database transaction, handing
// it transaction-bound repositories. Returning an error rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner constructs a runner on top of the shared GORM handle.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) Run(ctx context.Context, fn func(repos TxRepos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(TxRepos{
			Items:    NewItemRepository(tx),
			Teachers: NewTeacherRepository(tx),
			Issues:   NewIssueRepository(tx),
			Logs:     NewInventoryLogRepository(tx),
		})
	})
}
