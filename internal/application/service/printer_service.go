package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/apperror"
	"github.com/tillbook/tillbook-api/pkg/money"
	"github.com/tillbook/tillbook-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	billRepo     repository.BillRepository
	kotRepo      repository.KOTRepository
	menuRepo     repository.MenuItemRepository
	settingsRepo repository.SettingsRepository
	width        int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	kotRepo repository.KOTRepository,
	menuRepo repository.MenuItemRepository,
	settingsRepo repository.SettingsRepository,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32 // 58mm paper
	}
	return &PrinterService{
		printer:      p,
		billRepo:     billRepo,
		kotRepo:      kotRepo,
		menuRepo:     menuRepo,
		settingsRepo: settingsRepo,
		width:        width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Connected bool   `json:"connected"`
	Type      string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Connected: s.printer.IsConnected(),
		Type:      s.printer.Type(),
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when the
// printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			ShopName: "PRINTER TEST",
		},
		BillNo: "TEST-001",
		Date:   "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 1000, Total: 1000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		SubTotal: 2000,
		Total:    2000,
	}

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintBillReceipt fetches a bill and prints its customer receipt
func (s *PrinterService) PrintBillReceipt(ctx context.Context, billID uuid.UUID) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	receipt := &entity.Receipt{
		BillNo:    bill.BillNo,
		Date:      bill.CreatedAt.Format("2006-01-02 15:04"),
		SubTotal:  bill.SubTotal,
		Tax:       bill.Total - bill.SubTotal,
		Total:     bill.Total,
		CreditDue: bill.CreditDue,
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		receipt.Header = entity.ReceiptHeader{
			ShopName: settings.ShopName,
			Address:  settings.Address,
			Phone:    settings.Phone,
			GSTIN:    settings.GSTIN,
		}
		receipt.Footer = settings.ReceiptFooter
	}

	if bill.Customer != nil {
		receipt.Customer = bill.Customer.Name
	}

	for _, kot := range bill.KOTs {
		for _, item := range kot.Items {
			name := item.MenuItem.Name
			if name == "" {
				if menuItem, err := s.menuRepo.GetByID(ctx, item.MenuItemID); err == nil && menuItem != nil {
					name = menuItem.Name
				} else {
					name = "Item"
				}
			}
			receipt.Items = append(receipt.Items, entity.ReceiptItem{
				Name:      name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Total:     item.Total,
			})
		}
	}

	for _, settlement := range bill.Settlements {
		receipt.Payments = append(receipt.Payments, entity.ReceiptLine{
			Label:  settlement.Kind.String(),
			Amount: settlement.Amount,
		})
	}

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (bill %s): %v", billID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintKOT prints a kitchen copy of a ticket: items and notes, no prices
func (s *PrinterService) PrintKOT(ctx context.Context, kotID uuid.UUID) error {
	kot, err := s.kotRepo.GetByID(ctx, kotID)
	if err != nil {
		return err
	}
	if kot == nil {
		return apperror.NewNotFoundError("KOT")
	}

	doc := printer.NewDocument(s.width)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(kot.KOTNo).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		SetAlign(printer.AlignLeft)

	if kot.TableNo != nil {
		doc.KeyValue("Table:", *kot.TableNo)
	}
	doc.KeyValue("Time:", kot.CreatedAt.Format("15:04")).
		Separator('-')

	for _, item := range kot.Items {
		name := item.MenuItem.Name
		if name == "" {
			if menuItem, err := s.menuRepo.GetByID(ctx, item.MenuItemID); err == nil && menuItem != nil {
				name = menuItem.Name
			} else {
				name = "Item"
			}
		}
		doc.TextF("%d x %s", item.Quantity, name)
		if item.Note != nil && *item.Note != "" {
			doc.TextF("  * %s", *item.Note)
		}
	}

	doc.FeedLines(3).PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		log.Printf("Printer error (kot %s): %v", kotID, err)
		return fmt.Errorf("failed to print KOT: %w", err)
	}
	return nil
}

// formatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) formatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNo).
		KeyValue("Date:", r.Date)

	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money.Format(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", money.Format(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.AmountLine("Subtotal:", r.SubTotal)
	if r.Tax > 0 {
		doc.AmountLine("Tax:", r.Tax)
	}
	doc.SetBold(true).
		AmountLine("TOTAL:", r.Total).
		SetBold(false)

	for _, p := range r.Payments {
		doc.AmountLine(p.Label+":", p.Amount)
	}
	if r.CreditDue > 0 {
		doc.AmountLine("Due:", r.CreditDue)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed()
	if r.Footer != "" {
		doc.Text(r.Footer)
	} else {
		doc.Text("Thank you, visit again!")
	}
	doc.LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
