package services

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

const sheetSaleOrder = "SALE ORDER"

// DefaultCompanyName appears in the workbook banner when the config leaves
// it unset.
const DefaultCompanyName = "N T WOOD PVT. LTD"

// brandGroup / catGroup hold the render order: brands in first-seen order,
// categories within a brand in category-order position. Rows arrive from
// the loader already sorted, so groups are contiguous slices.
type brandGroup struct {
	Name string
	Cats []catGroup
}

type catGroup struct {
	Name string
	Rows []LineItem
}

func groupRows(rows []LineItem) []brandGroup {
	var groups []brandGroup
	for _, item := range rows {
		if len(groups) == 0 || groups[len(groups)-1].Name != item.Brand {
			groups = append(groups, brandGroup{Name: item.Brand})
		}
		bg := &groups[len(groups)-1]
		if len(bg.Cats) == 0 || bg.Cats[len(bg.Cats)-1].Name != item.CategoryNorm {
			bg.Cats = append(bg.Cats, catGroup{Name: item.CategoryNorm})
		}
		cg := &bg.Cats[len(bg.Cats)-1]
		cg.Rows = append(cg.Rows, item)
	}
	return groups
}

// cellRange is a contiguous block of data rows feeding one SUM formula.
type cellRange struct {
	Start, End int
}

// sumOver builds a SUM formula over the given ranges in one column,
// e.g. SUM(E11:E13,E16:E16).
func sumOver(col string, ranges []cellRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = fmt.Sprintf("%s%d:%s%d", col, r.Start, col, r.End)
	}
	return "SUM(" + strings.Join(parts, ",") + ")"
}

type reportStyles struct {
	Banner      int
	Company     int
	InfoLabel   int
	InfoValue   int
	InfoGreen   int
	InfoYellow  int
	ColHeader   int
	DataEven    int
	DataOdd     int
	CatSubtotal int
	BlankRow    int
	BrandTotal  int
	Separator   int
	GrandTotal  int
	Footer      int
}

func borders(style int, color string) []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	out := make([]excelize.Border, len(sides))
	for i, side := range sides {
		out[i] = excelize.Border{Type: side, Color: color, Style: style}
	}
	return out
}

func thinBorders() []excelize.Border   { return borders(1, "#000000") }
func thickBorders() []excelize.Border  { return borders(5, "#000000") }
func mediumBorders() []excelize.Border { return borders(2, "#2F5233") }

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func solidFill(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var s reportStyles
	var err error

	newStyle := func(dst *int, name string, style *excelize.Style) {
		if err != nil {
			return
		}
		var id int
		if id, err = f.NewStyle(style); err != nil {
			err = fmt.Errorf("create %s style: %w", name, err)
			return
		}
		*dst = id
	}

	newStyle(&s.Banner, "banner", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "#FF0000"},
		Fill:      solidFill("#D3D3D3"),
		Alignment: centered(),
	})
	newStyle(&s.Company, "company", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      solidFill("#D3D3D3"),
		Alignment: centered(),
	})
	newStyle(&s.InfoLabel, "info label", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      solidFill("#D3D3D3"),
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.InfoValue, "info value", &excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.InfoGreen, "info green", &excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Fill:      solidFill("#C6EFCE"),
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.InfoYellow, "info yellow", &excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Fill:      solidFill("#FFFF00"),
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.ColHeader, "column header", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      solidFill("#C6EFCE"),
		Border:    mediumBorders(),
		Alignment: centered(),
	})
	newStyle(&s.DataEven, "even data row", &excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Fill:      solidFill("#F2F2F2"),
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.DataOdd, "odd data row", &excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Fill:      solidFill("#FFFFFF"),
		Border:    thinBorders(),
		Alignment: centered(),
	})
	newStyle(&s.CatSubtotal, "category subtotal", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Fill:      solidFill("#B7E1CD"),
		Border:    thickBorders(),
		Alignment: centered(),
	})
	newStyle(&s.BlankRow, "blank row", &excelize.Style{
		Border: thinBorders(),
	})
	newStyle(&s.BrandTotal, "brand total", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
		Fill:      solidFill("#8064A2"),
		Border:    thickBorders(),
		Alignment: centered(),
	})
	newStyle(&s.Separator, "separator", &excelize.Style{
		Fill:   solidFill("#E0E0E0"),
		Border: thickBorders(),
	})
	newStyle(&s.GrandTotal, "grand total", &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      solidFill("#FFD966"),
		Border:    thickBorders(),
		Alignment: centered(),
	})
	newStyle(&s.Footer, "footer", &excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 9, Color: "#666666"},
		Fill:      solidFill("#E0E0E0"),
		Alignment: centered(),
	})
	return s, err
}

// GenerateSaleOrder renders the annotated row set into the styled,
// formula-bearing sale-order workbook and returns the file bytes. Every
// subtotal, brand total and grand total is a native SUM formula over the
// contributing ranges, so the sheet recalculates after downstream edits.
func GenerateSaleOrder(data *OrderData, meta ReportMeta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSaleOrder); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	styles, err := newReportStyles(f)
	if err != nil {
		return nil, err
	}

	company := meta.CompanyName
	if company == "" {
		company = DefaultCompanyName
	}

	// ── Banner (rows 1-2) ───────────────────────────────────────────────
	if err := f.MergeCell(sheetSaleOrder, "D1", "G1"); err != nil {
		return nil, fmt.Errorf("merge banner: %w", err)
	}
	f.SetCellValue(sheetSaleOrder, "D1", "PROVISIONAL ORDER")
	f.SetCellStyle(sheetSaleOrder, "D1", "G1", styles.Banner)

	if err := f.MergeCell(sheetSaleOrder, "D2", "G2"); err != nil {
		return nil, fmt.Errorf("merge company: %w", err)
	}
	f.SetCellValue(sheetSaleOrder, "D2", company)
	f.SetCellStyle(sheetSaleOrder, "D2", "G2", styles.Company)

	// ── Order info block (rows 4-8) ─────────────────────────────────────
	info := []struct {
		Label string
		Value string
		Style int
	}{
		{"DATE", meta.OrderDate, styles.InfoValue},
		{"DEALER NAME", meta.DealerName, styles.InfoGreen},
		{"CITY", meta.City, styles.InfoValue},
		{"FREIGHT CONDITION", meta.FreightCondition, styles.InfoValue},
		{"ORDER ID", meta.OrderID, styles.InfoYellow},
	}
	row := 4
	for _, entry := range info {
		value := entry.Value
		if value == "" {
			value = "N/A"
		}
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("A%d", row), entry.Label)
		f.SetCellStyle(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.InfoLabel)
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("B%d", row), value)
		f.SetCellStyle(sheetSaleOrder, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), entry.Style)
		row++
	}
	row++ // spacing row

	// ── Column headers ──────────────────────────────────────────────────
	headers := []string{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QUANTITY", "SQFT", "WEIGHT"}
	for i, h := range headers {
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("%c%d", 'A'+i, row), h)
	}
	f.SetCellStyle(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), styles.ColHeader)
	row++

	// ── Grouped data with running subtotals ─────────────────────────────
	rowStyle := func(r int, style int) {
		f.SetCellStyle(sheetSaleOrder, fmt.Sprintf("A%d", r), fmt.Sprintf("G%d", r), style)
	}
	blankRow := func() {
		rowStyle(row, styles.BlankRow)
		row++
	}

	var grandRanges []cellRange
	dataRowCount := 0

	for _, brand := range groupRows(data.Rows) {
		var brandRanges []cellRange

		for _, cat := range brand.Cats {
			dataStart := row
			for _, item := range cat.Rows {
				r := fmt.Sprintf("%d", row)
				f.SetCellValue(sheetSaleOrder, "A"+r, item.Product)
				f.SetCellValue(sheetSaleOrder, "B"+r, item.Size)
				f.SetCellValue(sheetSaleOrder, "C"+r, item.Category)
				f.SetCellValue(sheetSaleOrder, "D"+r, item.Brand)
				f.SetCellValue(sheetSaleOrder, "E"+r, int(item.Quantity))

				if formula := AreaFormula(item, row); formula != "" {
					f.SetCellFormula(sheetSaleOrder, "F"+r, formula)
				} else {
					f.SetCellValue(sheetSaleOrder, "F"+r, 0)
				}
				if formula := WeightFormula(item, row, data.Tables); formula != "" {
					f.SetCellFormula(sheetSaleOrder, "G"+r, formula)
				} else {
					f.SetCellValue(sheetSaleOrder, "G"+r, 0)
				}

				if dataRowCount%2 == 0 {
					rowStyle(row, styles.DataEven)
				} else {
					rowStyle(row, styles.DataOdd)
				}
				row++
				dataRowCount++
			}

			if row == dataStart {
				continue
			}
			span := cellRange{Start: dataStart, End: row - 1}
			brandRanges = append(brandRanges, span)

			if err := f.MergeCell(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row)); err != nil {
				return nil, fmt.Errorf("merge subtotal row %d: %w", row, err)
			}
			f.SetCellValue(sheetSaleOrder, fmt.Sprintf("A%d", row), cat.Name)
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("E%d", row), sumOver("E", []cellRange{span}))
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("F%d", row), sumOver("F", []cellRange{span}))
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("G%d", row), sumOver("G", []cellRange{span}))
			rowStyle(row, styles.CatSubtotal)
			row++
			blankRow()
		}

		if err := f.MergeCell(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row)); err != nil {
			return nil, fmt.Errorf("merge brand total row %d: %w", row, err)
		}
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("A%d", row), "BRAND TOTAL: "+brand.Name)
		if len(brandRanges) > 0 {
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("E%d", row), sumOver("E", brandRanges))
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("F%d", row), sumOver("F", brandRanges))
			f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("G%d", row), sumOver("G", brandRanges))
		} else {
			f.SetCellValue(sheetSaleOrder, fmt.Sprintf("E%d", row), 0)
			f.SetCellValue(sheetSaleOrder, fmt.Sprintf("F%d", row), 0)
			f.SetCellValue(sheetSaleOrder, fmt.Sprintf("G%d", row), 0)
		}
		rowStyle(row, styles.BrandTotal)
		row++
		blankRow()

		grandRanges = append(grandRanges, brandRanges...)
	}

	// ── Grand total and footer ──────────────────────────────────────────
	rowStyle(row, styles.Separator)
	if err := f.SetRowHeight(sheetSaleOrder, row, 10); err != nil {
		return nil, fmt.Errorf("set separator height: %w", err)
	}
	row++

	if err := f.MergeCell(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row)); err != nil {
		return nil, fmt.Errorf("merge grand total: %w", err)
	}
	f.SetCellValue(sheetSaleOrder, fmt.Sprintf("A%d", row), "GRAND TOTAL")
	if len(grandRanges) > 0 {
		f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("E%d", row), sumOver("E", grandRanges))
		f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("F%d", row), sumOver("F", grandRanges))
		f.SetCellFormula(sheetSaleOrder, fmt.Sprintf("G%d", row), sumOver("G", grandRanges))
	} else {
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("E%d", row), 0)
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("F%d", row), 0)
		f.SetCellValue(sheetSaleOrder, fmt.Sprintf("G%d", row), 0)
	}
	rowStyle(row, styles.GrandTotal)
	row++

	brandCount := len(groupRows(data.Rows))
	footer := fmt.Sprintf("Report Generated by %s | Total Items: %d | Brands: %d",
		company, len(data.Rows), brandCount)
	if err := f.MergeCell(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row)); err != nil {
		return nil, fmt.Errorf("merge footer: %w", err)
	}
	f.SetCellValue(sheetSaleOrder, fmt.Sprintf("A%d", row), footer)
	f.SetCellStyle(sheetSaleOrder, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), styles.Footer)

	// ── Page setup ──────────────────────────────────────────────────────
	widths := []float64{20, 12, 18, 16, 10, 12, 12}
	for i, w := range widths {
		col := string(rune('A' + i))
		if err := f.SetColWidth(sheetSaleOrder, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	landscape := "landscape"
	paperA4 := 9
	fitToWidth, fitToHeight := 1, 0
	if err := f.SetPageLayout(sheetSaleOrder, &excelize.PageLayoutOptions{
		Orientation: &landscape,
		Size:        &paperA4,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	}); err != nil {
		return nil, fmt.Errorf("set page layout: %w", err)
	}
	side, vertical := 0.5, 0.75
	if err := f.SetPageMargins(sheetSaleOrder, &excelize.PageLayoutMarginsOptions{
		Left:   &side,
		Right:  &side,
		Top:    &vertical,
		Bottom: &vertical,
	}); err != nil {
		return nil, fmt.Errorf("set page margins: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// ReportFilename builds the stored workbook name for a dealer and
// generation time.
func ReportFilename(dealerName string, now time.Time) string {
	return fmt.Sprintf("%s_%s_SALE_ORDER.xlsx",
		sanitizeFilename(dealerName), now.Format("20060102-150405"))
}

// WriteReport renders the workbook, persists it under reportDir and records
// the order in the durable log. A failing log store is reported in the logs
// only; the report on disk is already good, so the caller still gets its
// filename.
func WriteReport(app core.App, data *OrderData, meta ReportMeta, reportDir string, now time.Time) (string, error) {
	out, err := GenerateSaleOrder(data, meta)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := ReportFilename(meta.DealerName, now)
	if err := os.WriteFile(filepath.Join(reportDir, name), out, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", name, err)
	}

	if err := LogOrder(app, meta, name); err != nil {
		log.Printf("report: order log unavailable: %v", err)
	}
	return name, nil
}
