// Package xmlexport construye la representación XML descargable de una
// factura emitida (cabecera, cliente y líneas). Usa el encoder de tokens de
// encoding/xml para controlar el orden exacto de los elementos.
package xmlexport

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// InvoiceLine línea con el nombre del producto ya resuelto.
type InvoiceLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoiceContext datos necesarios para construir el documento.
type InvoiceContext struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Lines    []InvoiceLine
}

// BuilderService construye el XML de la factura.
type BuilderService struct{}

// NewBuilderService crea el servicio.
func NewBuilderService() *BuilderService {
	return &BuilderService{}
}

// Build genera el []byte del documento Invoice.
func (s *BuilderService) Build(ctx *InvoiceContext) ([]byte, error) {
	if ctx == nil || ctx.Invoice == nil || ctx.Customer == nil {
		return nil, fmt.Errorf("xmlexport: faltan invoice o customer en el contexto")
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "Invoice"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: ctx.Invoice.ID}},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	writeElem(enc, "Number", ctx.Invoice.Number)
	writeElem(enc, "Date", ctx.Invoice.Date.Format("2006-01-02"))
	writeElem(enc, "Total", ctx.Invoice.Total.StringFixed(2))

	customer := xml.StartElement{
		Name: xml.Name{Local: "Customer"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: ctx.Customer.ID}},
	}
	if err := enc.EncodeToken(customer); err != nil {
		return nil, err
	}
	writeElem(enc, "Name", ctx.Customer.Name)
	if ctx.Customer.Email != "" {
		writeElem(enc, "Email", ctx.Customer.Email)
	}
	if err := enc.EncodeToken(customer.End()); err != nil {
		return nil, err
	}

	lines := xml.StartElement{Name: xml.Name{Local: "Lines"}}
	if err := enc.EncodeToken(lines); err != nil {
		return nil, err
	}
	for _, line := range ctx.Lines {
		le := xml.StartElement{
			Name: xml.Name{Local: "Line"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "productId"}, Value: line.ProductID}},
		}
		if err := enc.EncodeToken(le); err != nil {
			return nil, err
		}
		writeElem(enc, "Description", line.ProductName)
		writeElem(enc, "Quantity", strconv.Itoa(line.Quantity))
		writeElem(enc, "UnitPrice", line.UnitPrice.StringFixed(2))
		writeElem(enc, "Subtotal", line.Subtotal.StringFixed(2))
		if err := enc.EncodeToken(le.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(lines.End()); err != nil {
		return nil, err
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeElem escribe <name>value</name>. Los errores reales del encoder
// salen en Flush; se ignoran aquí para no ensuciar el flujo de construcción.
func writeElem(enc *xml.Encoder, name, value string) {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	_ = enc.EncodeToken(el)
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(el.End())
}
