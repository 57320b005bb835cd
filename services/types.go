package services

// ProductKind classifies a line item's product type and selects its weight
// rule. Classification happens once, when the row is loaded, so the writers
// never branch on raw product strings.
type ProductKind int

const (
	// KindGeneric has no weight rule; the weight cell stays zero.
	KindGeneric ProductKind = iota
	// KindFixedArea applies a fixed per-unit coefficient to the area cell
	// (door, board).
	KindFixedArea
	// KindThicknessQty applies a thickness-table coefficient to the quantity
	// cell (hdmr, mdf, wpc board).
	KindThicknessQty
	// KindThicknessArea applies a thickness-table coefficient to the area
	// cell (ply, pvc door).
	KindThicknessArea
	// KindPerPiece applies a (product, brand) coefficient to the quantity
	// cell (laminate, liner).
	KindPerPiece
)

// LineItem is one row of the Master sheet after annotation by the loader.
type LineItem struct {
	Product  string
	Size     string
	Category string
	Brand    string
	Quantity float64

	// Derived during loading.
	CategoryNorm string
	Area         float64
	Kind         ProductKind
}

// CategoryRule is one row of the CategoryMap sheet, in sheet order.
// A keyword of "*" marks the fallback rule; "A+B" requires both keywords.
type CategoryRule struct {
	Keyword string
	Target  string
}

// PieceKey looks up a per-piece weight coefficient. Product is lowercased,
// Brand uppercased, matching how the WeightMap sheet is keyed.
type PieceKey struct {
	Product string
	Brand   string
}

// WeightTables bundles the lookup maps built from the auxiliary sheets.
// A missing or malformed sheet leaves its map empty, which makes every
// lookup miss and the affected weight cells zero.
type WeightTables struct {
	PerPiece map[PieceKey]float64 // WeightMap: (product, brand) → kg per piece
	HDMR     map[float64]float64  // HDMRWeightMap: thickness → kg per piece
	MDF      map[float64]float64  // MDFWeightMap: thickness → kg per piece
	Ply      map[float64]float64  // PlyWeightMap: thickness → kg per sqft
	PVC      map[float64]float64  // PVCWeightMap: thickness → kg per sqft
	WPC      map[float64]float64  // WPCBoardWeightMap: thickness → kg per piece
}

// OrderData is the loader's output: annotated rows in final render order,
// the category ordering used for grouping, and the weight tables the
// writers consult per row.
type OrderData struct {
	Rows          []LineItem
	CategoryOrder []string
	Tables        WeightTables
}

// ReportMeta is the order metadata the web layer supplies for one report.
// All fields arrive already validated.
type ReportMeta struct {
	Username         string
	DealerName       string
	City             string
	OrderDate        string
	FreightCondition string
	OrderID          string
	CompanyName      string
}
