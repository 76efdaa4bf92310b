package deliverynote

import "context"

// NotePDFData datos ya resueltos (nombres, no IDs) para la representación
// gráfica del albarán.
type NotePDFData struct {
	NoteID       string
	UserName     string
	ClientName   string
	ProjectName  string
	Type         string
	Entries      []PDFEntry
	Signed       bool
	SignatureURL string
}

// PDFEntry una línea del albarán tal como se imprime.
type PDFEntry struct {
	Name        string
	Quantity    string
	Unit        string
	Description string
}

// PDFGenerator genera los bytes del PDF del albarán. La generación es de
// solo lectura: nunca muta el albarán.
type PDFGenerator interface {
	GenerateNotePDF(ctx context.Context, data NotePDFData) ([]byte, error)
}
