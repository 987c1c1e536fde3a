package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth = 190.0
	rowHeight = 7.0
)

// PDFRenderer lays out the inspection report on a single A4 page (more when the checklist
// or photo list overflows).
type PDFRenderer struct {
	currency string
	loc      *time.Location
}

var _ shared.ReportRenderer = (*PDFRenderer)(nil)

func NewPDFRenderer(currency string, loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{currency: strings.ToUpper(currency), loc: loc}
}

func (r *PDFRenderer) Render(b *booking.Booking, proof *inspection.Proof) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Inspection report "+b.ID().String(), true)
	pdf.SetCreator("inspection-marketplace", true)
	// metadata dates come from the proof so a re-render matches the stored report
	pdf.SetCreationDate(proof.CreatedAt())
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(pageWidth, 10, "Pre-purchase inspection report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(pageWidth, 5, "Booking "+b.ID().String(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	v := b.Vehicle()
	section(pdf, "Vehicle")
	field(pdf, tr, "Vehicle", fmt.Sprintf("%s %s (%d)", v.Brand, v.Model, v.Year))
	field(pdf, tr, "Type", string(v.Type))
	field(pdf, tr, "Declared plate", v.Plate)
	field(pdf, tr, "Plate read on site", proof.PlateReading())
	field(pdf, tr, "Odometer", fmt.Sprintf("%d km", proof.OdometerKm()))

	section(pdf, "Appointment")
	field(pdf, tr, "Scheduled", b.ScheduledAt().In(r.loc).Format("2006-01-02 15:04 MST"))
	field(pdf, tr, "Address", b.Location().Address)
	if at := b.CheckedOutAt(); at != nil {
		field(pdf, tr, "Checked out", at.In(r.loc).Format("2006-01-02 15:04 MST"))
	}
	if gps := proof.GPS(); gps != nil {
		field(pdf, tr, "GPS", fmt.Sprintf("%.5f, %.5f", gps.Lat, gps.Lng))
	}
	if b.OBDRequested() {
		field(pdf, tr, "OBD diagnostics", "requested")
	}

	section(pdf, "Checklist")
	checklist(pdf, tr, proof.Checklist())

	section(pdf, "Photos")
	pdf.SetFont("Helvetica", "", 9)
	for i, url := range proof.PhotoURLs() {
		pdf.CellFormat(pageWidth, 5, fmt.Sprintf("%d. %s", i+1, url), "", 1, "L", false, 0, url)
	}

	section(pdf, "Price")
	p := b.Price()
	field(pdf, tr, "Inspection", p.BasePrice.StringFixed(2)+" "+r.currency)
	field(pdf, tr, "Travel", p.TravelFees.StringFixed(2)+" "+r.currency)
	field(pdf, tr, "Total charged", p.TotalPrice.StringFixed(2)+" "+r.currency)

	if pdf.Err() {
		return nil, errs.Wrap(pdf.Error(), "render report")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errs.Wrap(err, "write report")
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(pageWidth, rowHeight, title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func field(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth-50, 6, tr(value), "", 1, "L", false, 0, "")
}

var conditionColors = map[inspection.Condition][3]int{
	inspection.ConditionGood:       {46, 125, 50},
	inspection.ConditionWorn:       {239, 108, 0},
	inspection.ConditionDefective:  {198, 40, 40},
	inspection.ConditionNotChecked: {117, 117, 117},
}

func checklist(pdf *fpdf.Fpdf, tr func(string) string, c inspection.Checklist) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, rowHeight, "Component", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, rowHeight, "Condition", "B", 0, "L", false, 0, "")
	pdf.CellFormat(pageWidth-75, rowHeight, "Note", "B", 1, "L", false, 0, "")

	for _, it := range c.Items() {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(45, rowHeight, tr(it.Component), "", 0, "L", false, 0, "")
		rgb := conditionColors[it.Condition]
		pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
		pdf.CellFormat(30, rowHeight, strings.ReplaceAll(string(it.Condition), "_", " "), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(pageWidth-75, rowHeight, tr(it.Note), "", 1, "L", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(pageWidth, 5, fmt.Sprintf("%d good, %d worn, %d defective, %d not checked",
		c.CountBy(inspection.ConditionGood),
		c.CountBy(inspection.ConditionWorn),
		c.CountBy(inspection.ConditionDefective),
		c.CountBy(inspection.ConditionNotChecked)), "", 1, "L", false, 0, "")
}
