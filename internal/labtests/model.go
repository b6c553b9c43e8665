package labtests

// Category groups tests into the catalog tabs.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryBlood    Category = "blood"
	CategoryDiabetes Category = "diabetes"
	CategoryThyroid  Category = "thyroid"
	CategoryLiver    Category = "liver"
	CategoryKidney   Category = "kidney"
	CategoryCardiac  Category = "cardiac"
	CategoryImaging  Category = "imaging"
)

// Categories lists the concrete categories in tab order.
func Categories() []Category {
	return []Category{
		CategoryBlood, CategoryDiabetes, CategoryThyroid, CategoryLiver,
		CategoryKidney, CategoryCardiac, CategoryImaging,
	}
}

// Valid reports whether c is "all" or one of the concrete categories.
func (c Category) Valid() bool {
	if c == CategoryAll {
		return true
	}
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// LabTest is a diagnostic test record in the static catalog.
type LabTest struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Category          Category `json:"category"`
	Icon              string   `json:"icon"`
	Price             int      `json:"price"`
	RequiresFasting   bool     `json:"requires_fasting"`
	ResultDuration    string   `json:"result_duration"`
	Description       string   `json:"description"`
	Parameters        []string `json:"parameters"`
	PreparationSteps  []string `json:"preparation_steps"`
	CommonIndications []string `json:"common_indications"`
}

// Fasting is the tri-state fasting filter.
type Fasting string

const (
	FastingAny Fasting = ""
	FastingYes Fasting = "yes"
	FastingNo  Fasting = "no"
)

// Filter composes the catalog filters with AND semantics.
type Filter struct {
	Category Category `json:"category"`
	Search   string   `json:"search,omitempty"`
	// MaxPrice nil means unbounded.
	MaxPrice *float64 `json:"max_price,omitempty"`
	Fasting  Fasting  `json:"fasting,omitempty"`
}

// ViewMode selects the presentation of the filtered set.
type ViewMode string

const (
	ViewCard  ViewMode = "card"
	ViewTable ViewMode = "table"
)
