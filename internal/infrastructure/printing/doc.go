// Package printing renders purchase order documents to PDF.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation driving Chrome over the DevTools protocol
// - PurchaseOrderRenderer building the order document from its embedded template
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	orders, err := NewPurchaseOrderRenderer(renderer, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pdf, err := orders.RenderPurchaseOrder(ctx, order)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes\n", len(pdf))
package printing
