package services

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// fixedWeights are per-unit coefficients applied to the area cell for
// products with a flat weight rule.
var fixedWeights = map[string]float64{
	"door":  1.5,
	"board": 1,
}

// thicknessProducts maps product types to how their thickness coefficient
// is applied: to the quantity cell or to the area cell.
var thicknessProducts = map[string]ProductKind{
	"hdmr":      KindThicknessQty,
	"mdf":       KindThicknessQty,
	"wpc board": KindThicknessQty,
	"ply":       KindThicknessArea,
	"pvc door":  KindThicknessArea,
}

// ClassifyProduct resolves a raw product string into its ProductKind.
// The loader calls this once per row so the writers dispatch on the tag.
func ClassifyProduct(product string) ProductKind {
	p := strings.ToLower(strings.TrimSpace(product))
	if _, ok := fixedWeights[p]; ok {
		return KindFixedArea
	}
	if kind, ok := thicknessProducts[p]; ok {
		return kind
	}
	if keywordProducts[p] {
		return KindPerPiece
	}
	return KindGeneric
}

var (
	sizeSep     = regexp.MustCompile(`[xX]`)
	thicknessRe = regexp.MustCompile(`^(\d+\.?\d*)mm`)
)

// Area computes square footage from an "LxB" size string. Dimensions with
// both parts at most 15 are taken as already foot-scale; larger values are
// treated as inches and divided by 144. The threshold is a domain heuristic
// carried over verbatim. Malformed sizes yield 0, never an error.
func Area(size string, qty float64) float64 {
	size = strings.TrimSpace(size)
	if !strings.Contains(strings.ToUpper(size), "X") {
		return 0
	}
	parts := sizeSep.Split(size, -1)
	if len(parts) != 2 {
		return 0
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		log.Printf("calc: unparseable size %q, area set to 0", size)
		return 0
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		log.Printf("calc: unparseable size %q, area set to 0", size)
		return 0
	}
	if l <= 15 && b <= 15 {
		return l * b * qty
	}
	return l * b / 144 * qty
}

// Thickness extracts the leading numeric run before "mm" from a category
// string, e.g. "18mm ply" → 18.
func Thickness(category string) (float64, bool) {
	m := thicknessRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(category)))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// AreaFormula returns the spreadsheet formula for the SQFT cell of the item
// rendered at the given sheet row, or "" when the cell should hold a
// literal 0 (per-piece products carry no area). The formula re-derives area
// from the size cell so the sheet stays recalculable after edits.
func AreaFormula(item LineItem, row int) string {
	if item.Kind == KindPerPiece {
		return ""
	}
	return fmt.Sprintf(
		"LET(a,LEFT(B%d,1)*RIGHT(B%d,1)*E%d,b,LEFT(B%d,2)*RIGHT(B%d,2)/144*E%d,IF(LEN(B%d)<4,a,b))",
		row, row, row, row, row, row, row)
}

// WeightFormula returns the spreadsheet formula for the weight cell of the
// item rendered at the given sheet row, or "" when no rule or lookup key
// applies and the cell should hold a literal 0. Column E is quantity,
// column F the computed area.
func WeightFormula(item LineItem, row int, tables WeightTables) string {
	coef, col, ok := weightCoefficient(item, tables)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s%d*%s", col, row, strconv.FormatFloat(coef, 'f', -1, 64))
}

// WeightValue is the numeric counterpart of WeightFormula, used where the
// output cannot recalculate (the PDF rendition and its totals).
func WeightValue(item LineItem, tables WeightTables) float64 {
	coef, col, ok := weightCoefficient(item, tables)
	if !ok {
		return 0
	}
	if col == "E" {
		return item.Quantity * coef
	}
	return item.Area * coef
}

// weightCoefficient resolves the item's weight coefficient and the column
// it multiplies ("E" quantity, "F" area).
func weightCoefficient(item LineItem, tables WeightTables) (coef float64, col string, ok bool) {
	product := strings.ToLower(strings.TrimSpace(item.Product))

	switch item.Kind {
	case KindFixedArea:
		return fixedWeights[product], "F", true

	case KindThicknessQty, KindThicknessArea:
		th, found := Thickness(item.Category)
		if !found {
			return 0, "", false
		}
		table := thicknessTable(product, tables)
		v, found := table[th]
		if !found {
			return 0, "", false
		}
		if item.Kind == KindThicknessArea {
			return v, "F", true
		}
		return v, "E", true

	case KindPerPiece:
		key := PieceKey{Product: product, Brand: strings.ToUpper(strings.TrimSpace(item.Brand))}
		v, found := tables.PerPiece[key]
		if !found {
			return 0, "", false
		}
		return v, "E", true
	}
	return 0, "", false
}

func thicknessTable(product string, tables WeightTables) map[float64]float64 {
	switch product {
	case "hdmr":
		return tables.HDMR
	case "mdf":
		return tables.MDF
	case "ply":
		return tables.Ply
	case "pvc door":
		return tables.PVC
	case "wpc board":
		return tables.WPC
	}
	return nil
}
