package services

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// addSheet creates a sheet and fills it row by row from A1 down.
func addSheet(t *testing.T, f *excelize.File, name string, rows [][]any) {
	t.Helper()
	if _, err := f.NewSheet(name); err != nil {
		t.Fatalf("new sheet %s: %v", name, err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			t.Fatalf("set row %d on %s: %v", i+1, name, err)
		}
	}
}

func testWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	addSheet(t, f, SheetMaster, [][]any{
		{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QUANTITY"},
		{"Laminate", "8x4", "1mm suede", "Acme", 5},
		{"Laminate", "8x4", "1mm tex gloss", "Acme", 2},
		{"Ply", "72x48", "18mm gurjan", "Beta", 3},
	})
	addSheet(t, f, SheetCategoryMap, [][]any{
		{"MATCH KEYWORD", "NORMALIZED CATEGORY"},
		{"suede", "SF"},
		{"gloss", "HG"},
		{"*", "MISC"},
	})
	addSheet(t, f, SheetWeightMap, [][]any{
		{"PRODUCT", "BRAND", "WEIGHT_PER_PCS"},
		{"Laminate", "Acme", 2.5},
	})
	addSheet(t, f, SheetPlyMap, [][]any{
		{"THICKNESS", "WEIGHT_PER_SQFT"},
		{18, 1.2},
	})
	return f
}

func TestLoad_FullWorkbook(t *testing.T) {
	data := Load(testWorkbook(t))

	if len(data.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(data.Rows))
	}

	byBrand := map[string][]LineItem{}
	for _, r := range data.Rows {
		byBrand[r.Brand] = append(byBrand[r.Brand], r)
	}

	acme := byBrand["Acme"]
	if len(acme) != 2 {
		t.Fatalf("got %d Acme rows, want 2", len(acme))
	}
	if acme[0].CategoryNorm != "SF" {
		t.Errorf("suede row normalized to %q, want SF", acme[0].CategoryNorm)
	}
	if acme[1].CategoryNorm != CategoryTex {
		t.Errorf("tex row normalized to %q, want %q", acme[1].CategoryNorm, CategoryTex)
	}
	if acme[0].Kind != KindPerPiece {
		t.Errorf("laminate kind = %v, want KindPerPiece", acme[0].Kind)
	}

	beta := byBrand["Beta"]
	if len(beta) != 1 {
		t.Fatalf("got %d Beta rows, want 1", len(beta))
	}
	// Ply is not a keyword product, so its raw category passes through.
	if beta[0].CategoryNorm != "18mm gurjan" {
		t.Errorf("ply category = %q, want raw 18mm gurjan", beta[0].CategoryNorm)
	}
	if beta[0].Area != 72*48.0/144*3 {
		t.Errorf("ply area = %v, want %v", beta[0].Area, 72*48.0/144*3)
	}

	if data.Tables.PerPiece[PieceKey{Product: "laminate", Brand: "ACME"}] != 2.5 {
		t.Error("per-piece table missing laminate/ACME entry")
	}
	if data.Tables.Ply[18] != 1.2 {
		t.Error("ply thickness table missing 18mm entry")
	}

	if len(data.CategoryOrder) == 0 || data.CategoryOrder[0] != "SF" {
		t.Errorf("category order = %v, want SF first", data.CategoryOrder)
	}
}

func TestLoad_MissingMasterUsesFallback(t *testing.T) {
	f := excelize.NewFile()
	data := Load(f)

	if len(data.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 fallback row", len(data.Rows))
	}
	if data.Rows[0].Product != "Laminate" || data.Rows[0].Quantity != 10 {
		t.Errorf("unexpected fallback row: %+v", data.Rows[0])
	}
}

func TestLoad_MissingCategoryMapUsesWildcard(t *testing.T) {
	f := excelize.NewFile()
	addSheet(t, f, SheetMaster, [][]any{
		{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QUANTITY"},
		{"Laminate", "8x4", "1mm suede", "Acme", 5},
	})
	data := Load(f)

	if got := data.Rows[0].CategoryNorm; got != "Default" {
		t.Errorf("category = %q, want wildcard fallback Default", got)
	}
}

func TestLoad_DegradedRows(t *testing.T) {
	f := excelize.NewFile()
	addSheet(t, f, SheetMaster, [][]any{
		{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QUANTITY"},
		{"Ply", "72x48", "18mm", "Beta", -4},
		{"", "", "", "", ""},
		{"Door", "bad size", "", "Beta", 2},
	})
	data := Load(f)

	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (blank row skipped)", len(data.Rows))
	}

	var ply, door LineItem
	for _, r := range data.Rows {
		switch r.Product {
		case "Ply":
			ply = r
		case "Door":
			door = r
		}
	}
	if ply.Quantity != 0 {
		t.Errorf("negative quantity clamped to %v, want 0", ply.Quantity)
	}
	if door.Area != 0 {
		t.Errorf("malformed size area = %v, want 0", door.Area)
	}
	if door.CategoryNorm != CategoryUnspecified {
		t.Errorf("blank category = %q, want %q", door.CategoryNorm, CategoryUnspecified)
	}
}

func TestLoad_SortOrder(t *testing.T) {
	f := excelize.NewFile()
	addSheet(t, f, SheetMaster, [][]any{
		{"PRODUCT", "SIZE", "CATEGORY", "BRAND", "QUANTITY"},
		{"Laminate", "10", "1mm gloss", "Zed", 1},
		{"Laminate", "2", "1mm suede", "Acme", 1},
		{"Laminate", "10", "1mm suede", "Acme", 1},
		{"Laminate", "NA", "1mm suede", "Acme", 1},
		{"Laminate", "8x4", "1mm gloss", "Acme", 1},
	})
	addSheet(t, f, SheetCategoryMap, [][]any{
		{"MATCH KEYWORD", "NORMALIZED CATEGORY"},
		{"suede", "SF"},
		{"gloss", "HG"},
	})
	data := Load(f)

	got := make([]string, 0, len(data.Rows))
	for _, r := range data.Rows {
		got = append(got, r.Brand+"/"+r.CategoryNorm+"/"+r.Size)
	}
	want := []string{
		"Acme/SF/2",
		"Acme/SF/10",
		"Acme/SF/NA",
		"Acme/HG/8x4",
		"Zed/HG/10",
	}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("sort order = %v, want %v", got, want)
		}
	}
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	if err := testWorkbook(t).SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}

	data, err := LoadWorkbook(path)
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}
	if len(data.Rows) != 3 {
		t.Errorf("got %d rows, want 3", len(data.Rows))
	}
}

func TestLoadWorkbook_Unopenable(t *testing.T) {
	if _, err := LoadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
