package repository

import "context"

// Repositories bundles every repository bound to one transaction
type Repositories struct {
	Users       UserRepository
	Customers   CustomerRepository
	MenuItems   MenuItemRepository
	KOTs        KOTRepository
	Bills       BillRepository
	Expenses    ExpenseRepository
	Settlements SettlementRepository
	Settings    SettingsRepository
}

// UnitOfWork runs fn inside a single database transaction. Settlement
// writes and the balance re-reads that guard them must share one
// transaction, which individual repositories cannot express on their own.
// fn returning an error rolls everything back.
type UnitOfWork interface {
	InTx(ctx context.Context, fn func(r Repositories) error) error
}
