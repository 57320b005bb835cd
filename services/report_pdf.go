package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// pdfColWidths is the 12-column grid split for the sale-order table:
// product, size, category, brand, qty, sqft, weight.
var pdfColWidths = []int{3, 1, 2, 2, 1, 1, 2}

// GenerateSaleOrderPDF renders a print-ready PDF counterpart of the
// sale-order workbook. PDF cells cannot recalculate, so area and weight are
// the computed values rather than formulas.
func GenerateSaleOrderPDF(data *OrderData, meta ReportMeta) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, meta)
	addPDFTableHeader(m)

	var grandQty, grandArea, grandWeight float64
	for _, brand := range groupRows(data.Rows) {
		var brandQty, brandArea, brandWeight float64
		for _, cat := range brand.Cats {
			for _, item := range cat.Rows {
				weight := WeightValue(item, data.Tables)
				addPDFRow(m, item, weight)
				brandQty += item.Quantity
				brandArea += item.Area
				brandWeight += weight
			}
		}
		addPDFTotalRow(m, "BRAND TOTAL: "+brand.Name, brandQty, brandArea, brandWeight,
			&props.Color{Red: 128, Green: 100, Blue: 162})
		grandQty += brandQty
		grandArea += brandArea
		grandWeight += brandWeight
	}

	addPDFTotalRow(m, "GRAND TOTAL", grandQty, grandArea, grandWeight,
		&props.Color{Red: 255, Green: 217, Blue: 102})

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, meta ReportMeta) {
	company := meta.CompanyName
	if company == "" {
		company = DefaultCompanyName
	}

	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("PROVISIONAL ORDER", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: &props.Color{Red: 200, Green: 0, Blue: 0},
				}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New(company, props.Text{
					Size:  13,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta2 := [][2]string{
		{"Date", meta.OrderDate},
		{"Dealer", meta.DealerName},
		{"City", meta.City},
		{"Freight", meta.FreightCondition},
		{"Order ID", meta.OrderID},
	}
	for _, kv := range meta2 {
		value := kv[1]
		if value == "" {
			value = "N/A"
		}
		m.AddRows(
			row.New(5).Add(
				col.New(3).Add(
					text.New(kv[0], props.Text{Size: 9, Style: fontstyle.Bold}),
				),
				col.New(9).Add(
					text.New(value, props.Text{Size: 9}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addPDFTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: &props.Color{Red: 47, Green: 82, Blue: 51}}

	headers := []string{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QTY", "SQFT", "WEIGHT"}
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = col.New(pdfColWidths[i]).Add(text.New(h, headerText)).WithStyle(&headerCell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addPDFRow(m core.Maroto, item LineItem, weight float64) {
	cell := props.Text{Size: 8, Align: align.Center}
	values := []string{
		item.Product,
		item.Size,
		item.Category,
		item.Brand,
		fmt.Sprintf("%d", int(item.Quantity)),
		fmt.Sprintf("%.2f", item.Area),
		fmt.Sprintf("%.2f", weight),
	}
	cols := make([]core.Col, len(values))
	for i, v := range values {
		cols[i] = col.New(pdfColWidths[i]).Add(text.New(v, cell))
	}
	m.AddRows(row.New(6).Add(cols...))
}

func addPDFTotalRow(m core.Maroto, label string, qty, area, weight float64, bg *props.Color) {
	bold := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center}
	labelText := bold
	labelText.Align = align.Left
	cellStyle := props.Cell{BackgroundColor: bg}

	labelSpan := pdfColWidths[0] + pdfColWidths[1] + pdfColWidths[2] + pdfColWidths[3]
	m.AddRows(
		row.New(7).Add(
			col.New(labelSpan).Add(text.New(label, labelText)).WithStyle(&cellStyle),
			col.New(pdfColWidths[4]).Add(text.New(fmt.Sprintf("%d", int(qty)), bold)).WithStyle(&cellStyle),
			col.New(pdfColWidths[5]).Add(text.New(fmt.Sprintf("%.2f", area), bold)).WithStyle(&cellStyle),
			col.New(pdfColWidths[6]).Add(text.New(fmt.Sprintf("%.2f", weight), bold)).WithStyle(&cellStyle),
		),
	)
}
