package services

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Input sheet names.
const (
	SheetMaster      = "Master"
	SheetCategoryMap = "CategoryMap"
	SheetWeightMap   = "WeightMap"
	SheetHDMRMap     = "HDMRWeightMap"
	SheetMDFMap      = "MDFWeightMap"
	SheetPlyMap      = "PlyWeightMap"
	SheetPVCMap      = "PVCWeightMap"
	SheetWPCMap      = "WPCBoardWeightMap"
)

// LoadWorkbook opens an uploaded workbook and prepares the full row set for
// rendering. A file that cannot be opened at all is the only terminal
// failure; missing or malformed sheets degrade to fallbacks with a logged
// warning so the pipeline always produces a report.
func LoadWorkbook(path string) (*OrderData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return Load(f), nil
}

// Load reads the Master table and the auxiliary lookup sheets from an open
// workbook, annotates every row with its normalized category, computed area
// and product kind, and sorts rows into final render order.
func Load(f *excelize.File) *OrderData {
	rows, rules := readMaster(f), readCategoryRules(f)

	tables := WeightTables{
		PerPiece: readPieceTable(f),
		HDMR:     readThicknessTable(f, SheetHDMRMap, "WEIGHT_PER_PCS"),
		MDF:      readThicknessTable(f, SheetMDFMap, "WEIGHT_PER_PCS"),
		Ply:      readThicknessTable(f, SheetPlyMap, "WEIGHT_PER_SQFT"),
		PVC:      readThicknessTable(f, SheetPVCMap, "WEIGHT_PER_SQFT"),
		WPC:      readThicknessTable(f, SheetWPCMap, "WEIGHT_PER_PCS"),
	}

	var present []string
	presentSeen := make(map[string]bool)
	for i := range rows {
		norm, ok := NormalizeCategory(rows[i].Category, rules, rows[i].Product)
		if !ok {
			norm = CategoryUnspecified
		}
		rows[i].CategoryNorm = norm
		rows[i].Area = Area(rows[i].Size, rows[i].Quantity)
		rows[i].Kind = ClassifyProduct(rows[i].Product)

		if !presentSeen[norm] {
			presentSeen[norm] = true
			present = append(present, norm)
		}
	}

	order := CategoryOrder(rules, present)
	sortRows(rows, order)

	return &OrderData{Rows: rows, CategoryOrder: order, Tables: tables}
}

// fallbackRows is substituted when the Master sheet is absent or unreadable.
func fallbackRows() []LineItem {
	return []LineItem{
		{Product: "Laminate", Size: "72x48", Category: "SF", Brand: "Test", Quantity: 10},
	}
}

func readMaster(f *excelize.File) []LineItem {
	recs, err := f.GetRows(SheetMaster)
	if err != nil || len(recs) < 2 {
		log.Printf("load: %s sheet missing or empty, using fallback dataset", SheetMaster)
		return fallbackRows()
	}

	idx := headerIndex(recs[0])
	var rows []LineItem
	for _, rec := range recs[1:] {
		if blankRecord(rec) {
			continue
		}
		qty := cast.ToFloat64(cellAt(rec, idx, "QUANTITY"))
		if qty < 0 {
			qty = 0
		}
		rows = append(rows, LineItem{
			Product:  strings.TrimSpace(cellAt(rec, idx, "PRODUCT")),
			Size:     strings.TrimSpace(cellAt(rec, idx, "SIZE")),
			Category: strings.TrimSpace(cellAt(rec, idx, "CATEGORY")),
			Brand:    strings.TrimSpace(cellAt(rec, idx, "BRAND")),
			Quantity: qty,
		})
	}
	if len(rows) == 0 {
		log.Printf("load: %s sheet has no data rows, using fallback dataset", SheetMaster)
		return fallbackRows()
	}
	return rows
}

func readCategoryRules(f *excelize.File) []CategoryRule {
	recs, err := f.GetRows(SheetCategoryMap)
	if err != nil || len(recs) < 2 {
		log.Printf("load: %s sheet missing, using wildcard fallback", SheetCategoryMap)
		return []CategoryRule{{Keyword: "*", Target: "Default"}}
	}

	idx := headerIndex(recs[0])
	var rules []CategoryRule
	for _, rec := range recs[1:] {
		keyword := strings.TrimSpace(cellAt(rec, idx, "MATCH KEYWORD"))
		if keyword == "" {
			continue
		}
		rules = append(rules, CategoryRule{
			Keyword: keyword,
			Target:  strings.TrimSpace(cellAt(rec, idx, "NORMALIZED CATEGORY")),
		})
	}
	return rules
}

func readPieceTable(f *excelize.File) map[PieceKey]float64 {
	table := make(map[PieceKey]float64)
	recs, err := f.GetRows(SheetWeightMap)
	if err != nil || len(recs) < 2 {
		return table
	}

	idx := headerIndex(recs[0])
	for _, rec := range recs[1:] {
		product := strings.ToLower(strings.TrimSpace(cellAt(rec, idx, "PRODUCT")))
		brand := strings.ToUpper(strings.TrimSpace(cellAt(rec, idx, "BRAND")))
		if product == "" || brand == "" {
			continue
		}
		weight, err := cast.ToFloat64E(cellAt(rec, idx, "WEIGHT_PER_PCS"))
		if err != nil {
			continue
		}
		table[PieceKey{Product: product, Brand: brand}] = weight
	}
	return table
}

func readThicknessTable(f *excelize.File, sheet, weightCol string) map[float64]float64 {
	table := make(map[float64]float64)
	recs, err := f.GetRows(sheet)
	if err != nil || len(recs) < 2 {
		return table
	}

	idx := headerIndex(recs[0])
	for _, rec := range recs[1:] {
		thickness, err := cast.ToFloat64E(cellAt(rec, idx, "THICKNESS"))
		if err != nil {
			continue
		}
		weight, err := cast.ToFloat64E(cellAt(rec, idx, weightCol))
		if err != nil {
			continue
		}
		table[thickness] = weight
	}
	return table
}

// headerIndex maps upper-cased, trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	return idx
}

func cellAt(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sortRows orders rows by (brand, category-order position, product, numeric
// size) ascending, with unparseable sizes after parseable ones.
func sortRows(rows []LineItem, order []string) {
	pos := make(map[string]int, len(order))
	for i, c := range order {
		pos[c] = i
	}
	catPos := func(c string) int {
		if p, ok := pos[c]; ok {
			return p
		}
		return len(order)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Brand != b.Brand {
			return a.Brand < b.Brand
		}
		if pa, pb := catPos(a.CategoryNorm), catPos(b.CategoryNorm); pa != pb {
			return pa < pb
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		return sizeLess(a.Size, b.Size)
	})
}

func sizeLess(a, b string) bool {
	na, errA := cast.ToFloat64E(a)
	nb, errB := cast.ToFloat64E(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true // numeric sizes sort before unparseable ones
	case errB == nil:
		return false
	default:
		return a < b
	}
}
