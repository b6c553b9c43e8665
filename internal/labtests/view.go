package labtests

import "fmt"

// Card is one tile of the card grid.
type Card struct {
	ID               int      `json:"id"`
	Icon             string   `json:"icon"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Price            string   `json:"price"`
	Description      string   `json:"description"`
	ResultDuration   string   `json:"result_duration"`
	Fasting          string   `json:"fasting"`
	ParameterSummary string   `json:"parameter_summary"`
	ParameterTags    []string `json:"parameter_tags"`
}

// Row is one line of the table view.
type Row struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	ParameterCount string   `json:"parameter_count"`
	Category       Category `json:"category"`
	Price          string   `json:"price"`
	Fasting        string   `json:"fasting"`
	ResultDuration string   `json:"result_duration"`
}

// Placeholder replaces the grid or table body when nothing matched.
type Placeholder struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

// Results is the page model. Exactly one of Cards or Rows is populated,
// depending on View; both present the same filtered set.
type Results struct {
	Filter      Filter       `json:"filter"`
	View        ViewMode     `json:"view"`
	Count       int          `json:"count"`
	CountLabel  string       `json:"count_label"`
	Cards       []Card       `json:"cards,omitempty"`
	Rows        []Row        `json:"rows,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// Detail is the read-only modal for a single test.
type Detail struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Icon              string   `json:"icon"`
	CategoryLabel     string   `json:"category_label"`
	Price             string   `json:"price"`
	Description       string   `json:"description"`
	ParametersTitle   string   `json:"parameters_title"`
	Parameters        []string `json:"parameters"`
	PreparationSteps  []string `json:"preparation_steps"`
	CommonIndications []string `json:"common_indications"`
	ResultDuration    string   `json:"result_duration"`
	Fasting           string   `json:"fasting"`
	SampleType        string   `json:"sample_type"`
	BookLabel         string   `json:"book_label"`
}

const parameterPreview = 3

// Render builds the page model for the filtered tests in the given view.
func Render(f Filter, view ViewMode, tests []LabTest) Results {
	res := Results{
		Filter:     f,
		View:       view,
		Count:      len(tests),
		CountLabel: CountLabel(len(tests)),
	}
	if len(tests) == 0 {
		res.Placeholder = &Placeholder{Title: "No tests found", Hint: "Try adjusting your filters"}
		return res
	}
	if view == ViewTable {
		res.Rows = make([]Row, 0, len(tests))
		for _, t := range tests {
			res.Rows = append(res.Rows, RenderRow(t))
		}
		return res
	}
	res.Cards = make([]Card, 0, len(tests))
	for _, t := range tests {
		res.Cards = append(res.Cards, RenderCard(t))
	}
	return res
}

// CountLabel formats the results counter.
func CountLabel(n int) string {
	if n == 1 {
		return "1 test found"
	}
	return fmt.Sprintf("%d tests found", n)
}

func RenderCard(t LabTest) Card {
	c := Card{
		ID:               t.ID,
		Icon:             t.Icon,
		Name:             t.Name,
		Category:         t.Category,
		Price:            fmt.Sprintf("$%d", t.Price),
		Description:      t.Description,
		ResultDuration:   t.ResultDuration,
		Fasting:          "Not Required",
		ParameterSummary: fmt.Sprintf("%d measured", len(t.Parameters)),
	}
	if t.RequiresFasting {
		c.Fasting = "Required (8-12 hours)"
	}
	if len(t.Parameters) > parameterPreview {
		c.ParameterTags = append(c.ParameterTags, t.Parameters[:parameterPreview]...)
		c.ParameterTags = append(c.ParameterTags, fmt.Sprintf("+%d more", len(t.Parameters)-parameterPreview))
	} else {
		c.ParameterTags = append(c.ParameterTags, t.Parameters...)
	}
	return c
}

func RenderRow(t LabTest) Row {
	r := Row{
		ID:             t.ID,
		Name:           t.Name,
		ParameterCount: fmt.Sprintf("%d parameters", len(t.Parameters)),
		Category:       t.Category,
		Price:          fmt.Sprintf("$%d", t.Price),
		Fasting:        "✗ Not Required",
		ResultDuration: t.ResultDuration,
	}
	if t.RequiresFasting {
		r.Fasting = "✓ Required"
	}
	return r
}

// RenderDetail builds the detail modal for t.
func RenderDetail(t LabTest) Detail {
	d := Detail{
		ID:                t.ID,
		Title:             t.Name,
		Icon:              t.Icon,
		CategoryLabel:     fmt.Sprintf("%s Test", t.Category),
		Price:             fmt.Sprintf("$%d", t.Price),
		Description:       t.Description,
		ParametersTitle:   fmt.Sprintf("Parameters Measured (%d)", len(t.Parameters)),
		Parameters:        t.Parameters,
		PreparationSteps:  t.PreparationSteps,
		CommonIndications: t.CommonIndications,
		ResultDuration:    t.ResultDuration,
		Fasting:           "No",
		SampleType:        SampleType(t.Category),
		BookLabel:         fmt.Sprintf("Book This Test - $%d", t.Price),
	}
	if t.RequiresFasting {
		d.Fasting = "Yes (8-12 hours)"
	}
	return d
}

// SampleType names what is collected for a category.
func SampleType(c Category) string {
	switch c {
	case CategoryImaging:
		return "Imaging scan"
	case CategoryCardiac:
		return "ECG test"
	default:
		return "Blood sample"
	}
}

// BookingNotice is the informational reply to "Book This Test". No booking is
// created.
type BookingNotice struct {
	TestID  int      `json:"test_id"`
	Message string   `json:"message"`
	Steps   []string `json:"steps"`
	Price   string   `json:"price"`
}

func RenderBookingNotice(t LabTest) BookingNotice {
	return BookingNotice{
		TestID:  t.ID,
		Message: fmt.Sprintf("Booking %s...", t.Name),
		Steps: []string{
			"Show available time slots",
			"Collect patient information",
			"Process payment",
			"Send confirmation email",
		},
		Price: fmt.Sprintf("$%d", t.Price),
	}
}
