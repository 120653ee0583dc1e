package repository

import (
	"context"

	domainRepo "github.com/tillbook/tillbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction runner over the given database
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &unitOfWork{db: db}
}

// NewRepositories builds the repository bundle over one database handle
func NewRepositories(db *gorm.DB) domainRepo.Repositories {
	return domainRepo.Repositories{
		Users:       NewUserRepository(db),
		Customers:   NewCustomerRepository(db),
		MenuItems:   NewMenuItemRepository(db),
		KOTs:        NewKOTRepository(db),
		Bills:       NewBillRepository(db),
		Expenses:    NewExpenseRepository(db),
		Settlements: NewSettlementRepository(db),
		Settings:    NewSettingsRepository(db),
	}
}

func (u *unitOfWork) InTx(ctx context.Context, fn func(r domainRepo.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
