package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook-api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	infraRepo "github.com/tillbook/tillbook-api/internal/infrastructure/repository"
)

// testEnv wires every service against one in-memory sqlite database so
// tests exercise the same repositories and transactions as production.
type testEnv struct {
	db *gorm.DB

	customerRepo   repository.CustomerRepository
	settlementRepo repository.SettlementRepository

	Customers *CustomerService
	Menu      *MenuService
	Billing   *BillingService
	Expenses  *ExpenseService
	Audit     *AuditService
	Reports   *ReportService
	Settings  *SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.Customer{},
		&entity.KOT{},
		&entity.KOTItem{},
		&entity.Bill{},
		&entity.Expense{},
		&entity.Settlement{},
		&entity.BusinessSettings{},
	))

	customerRepo := infraRepo.NewCustomerRepository(db)
	menuRepo := infraRepo.NewMenuItemRepository(db)
	kotRepo := infraRepo.NewKOTRepository(db)
	billRepo := infraRepo.NewBillRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	settlementRepo := infraRepo.NewSettlementRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	uow := infraRepo.NewUnitOfWork(db)

	return &testEnv{
		db:             db,
		customerRepo:   customerRepo,
		settlementRepo: settlementRepo,
		Customers:      NewCustomerService(customerRepo, settlementRepo, uow),
		Menu:           NewMenuService(menuRepo),
		Billing:        NewBillingService(kotRepo, billRepo, menuRepo, customerRepo, settingsRepo, uow),
		Expenses:       NewExpenseService(expenseRepo, settlementRepo, uow),
		Audit:          NewAuditService(customerRepo, settlementRepo, uow),
		Reports:        NewReportService(settlementRepo, customerRepo),
		Settings:       NewSettingsService(settingsRepo),
	}
}

// requireAppCode asserts that err carries the given HTTP status code
func requireAppCode(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

func (e *testEnv) createUser(t *testing.T) *entity.User {
	t.Helper()
	user := &entity.User{
		Name:  "Till Operator",
		Email: uuid.NewString() + "@tillbook.local",
		Role:  entity.RoleStaff,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCustomer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	customer, err := e.Customers.CreateCustomer(context.Background(), &CreateCustomerInput{Name: name})
	require.NoError(t, err)
	return customer
}

func (e *testEnv) createMenuItem(t *testing.T, name string, pricePaise int64) *entity.MenuItem {
	t.Helper()
	item, err := e.Menu.CreateMenuItem(context.Background(), &CreateMenuItemInput{
		Name:      name,
		Category:  "Snacks",
		Price:     pricePaise,
		Available: true,
	})
	require.NoError(t, err)
	return item
}

// openBill creates a ticket for one menu item and bills it, returning an
// open bill whose total equals the item price times quantity.
func (e *testEnv) openBill(t *testing.T, userID uuid.UUID, customerID *uuid.UUID, item *entity.MenuItem, qty int) *entity.Bill {
	t.Helper()
	ctx := context.Background()

	kot, err := e.Billing.CreateKOT(ctx, &CreateKOTInput{
		UserID:     userID,
		CustomerID: customerID,
		Items:      []KOTItemInput{{MenuItemID: item.ID, Quantity: qty}},
	})
	require.NoError(t, err)

	bill, err := e.Billing.CreateBill(ctx, &CreateBillInput{
		UserID:     userID,
		CustomerID: customerID,
		KOTIDs:     []uuid.UUID{kot.ID},
	})
	require.NoError(t, err)
	return bill
}
