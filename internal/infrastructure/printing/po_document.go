package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	procurementapp "github.com/opsdesk/backend/internal/application/procurement"
	"github.com/opsdesk/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

const purchaseOrderTemplate = "templates/purchase_order.html"

// Ensure PurchaseOrderRenderer implements the procurement document port
var _ procurementapp.OrderDocumentRenderer = (*PurchaseOrderRenderer)(nil)

// PurchaseOrderRenderer builds the purchase order document from its
// embedded HTML template and renders it to PDF
type PurchaseOrderRenderer struct {
	pdf     PDFRenderer
	tmpl    *template.Template
	printer *message.Printer
	logger  *zap.Logger
}

// NewPurchaseOrderRenderer creates a purchase order document renderer
// on top of the given PDF renderer
func NewPurchaseOrderRenderer(pdf PDFRenderer, logger *zap.Logger) (*PurchaseOrderRenderer, error) {
	if pdf == nil {
		return nil, fmt.Errorf("pdf renderer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.ParseFS(templateFS, purchaseOrderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse purchase order template: %w", err)
	}

	return &PurchaseOrderRenderer{
		pdf:     pdf,
		tmpl:    tmpl,
		printer: message.NewPrinter(language.AmericanEnglish),
		logger:  logger,
	}, nil
}

// RenderPurchaseOrder renders the order document and returns the PDF bytes
func (r *PurchaseOrderRenderer) RenderPurchaseOrder(ctx context.Context, order *procurement.PurchaseOrder) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("order is required")
	}

	html, err := r.buildHTML(order)
	if err != nil {
		return nil, err
	}

	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:        html,
		PaperSize:   PaperSizeLetter,
		Orientation: OrientationPortrait,
		Margins:     DefaultMargins(),
		Title:       "Purchase Order " + order.PONumber,
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("purchase order document rendered",
		zap.String("po_number", order.PONumber),
		zap.Int("pages", result.PageCount))

	return result.PDFData, nil
}

// orderDocumentData is the template model for the purchase order document
type orderDocumentData struct {
	CompanyName  string
	PONumber     string
	OrderDate    string
	Status       string
	VendorName   string
	VendorLines  []string
	ShipToName   string
	ShipToLines  []string
	BillToName   string
	BillToLines  []string
	Items        []orderDocumentItem
	Subtotal     string
	TaxLabel     string
	TaxAmount    string
	ShippingCost string
	GrandTotal   string
	Notes        string
}

// orderDocumentItem is one row of the item table
type orderDocumentItem struct {
	Quantity    string
	Description string
	Department  string
	UnitPrice   string
	Amount      string
}

// buildHTML executes the document template against the order
func (r *PurchaseOrderRenderer) buildHTML(order *procurement.PurchaseOrder) (string, error) {
	companyName := order.CompanyName
	if companyName == "" {
		companyName = "PURCHASE ORDER"
	}

	orderDate := "Draft"
	if order.FinalizedAt != nil {
		orderDate = order.FinalizedAt.Format("January 2, 2006")
	}

	data := orderDocumentData{
		CompanyName:  companyName,
		PONumber:     order.PONumber,
		OrderDate:    orderDate,
		Status:       string(order.Status),
		VendorName:   order.VendorName,
		VendorLines:  addressLines(order.VendorAddress),
		ShipToName:   order.ShipToName,
		ShipToLines:  addressLines(order.ShipToAddress),
		BillToName:   order.CompanyName,
		BillToLines:  addressLines(order.CompanyAddress),
		Subtotal:     r.money(order.Subtotal),
		TaxLabel:     fmt.Sprintf("TAX (%s%%)", order.TaxRate.Mul(decimal.NewFromInt(100)).StringFixed(2)),
		TaxAmount:    r.money(order.TaxAmount),
		ShippingCost: r.money(order.ShippingCost),
		GrandTotal:   r.money(order.GrandTotal),
		Notes:        order.Notes,
	}

	for _, item := range order.Items {
		if !item.CountsTowardTotal() {
			continue
		}
		data.Items = append(data.Items, orderDocumentItem{
			Quantity:    item.Quantity.String(),
			Description: item.Description,
			Department:  item.Department,
			UnitPrice:   r.money(item.UnitPrice),
			Amount:      r.money(item.Amount),
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to build purchase order document", err)
	}

	return buf.String(), nil
}

// money formats an amount as dollars with thousands grouping
func (r *PurchaseOrderRenderer) money(d decimal.Decimal) string {
	return r.printer.Sprintf("$%.2f", d.InexactFloat64())
}

// addressLines splits a free-form address into its non-empty lines
func addressLines(address string) []string {
	var lines []string
	for _, line := range strings.Split(address, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
