package labtests

import (
	"context"
	"fmt"
)

// Catalog serves lab test records.
type Catalog interface {
	List(ctx context.Context) ([]LabTest, error)
	Get(ctx context.Context, id int) (LabTest, error)
}

// StaticCatalog is the built-in reference catalog loaded at start.
type StaticCatalog struct {
	tests []LabTest
	byID  map[int]int
}

// NewStaticCatalog indexes tests. Passing nil loads DefaultTests.
func NewStaticCatalog(tests []LabTest) *StaticCatalog {
	if tests == nil {
		tests = DefaultTests()
	}
	c := &StaticCatalog{tests: tests, byID: make(map[int]int, len(tests))}
	for i, t := range tests {
		c.byID[t.ID] = i
	}
	return c
}

func (c *StaticCatalog) List(_ context.Context) ([]LabTest, error) {
	out := make([]LabTest, len(c.tests))
	copy(out, c.tests)
	return out, nil
}

func (c *StaticCatalog) Get(_ context.Context, id int) (LabTest, error) {
	idx, ok := c.byID[id]
	if !ok {
		return LabTest{}, fmt.Errorf("%w: %d", ErrTestNotFound, id)
	}
	return c.tests[idx], nil
}

// DefaultTests returns a fresh copy of the 15-entry reference catalog.
func DefaultTests() []LabTest {
	return []LabTest{
		{
			ID: 1, Name: "Complete Blood Count (CBC)", Category: CategoryBlood, Icon: "🩸",
			Price: 25, RequiresFasting: false, ResultDuration: "24 hours",
			Description: "Measures various components of blood including red blood cells, white blood cells, hemoglobin, and platelets.",
			Parameters:  []string{"Hemoglobin", "RBC", "WBC", "Platelets", "Hematocrit"},
			PreparationSteps: []string{
				"No special preparation required",
				"Can be done at any time of the day",
				"Inform your doctor about any medications",
			},
			CommonIndications: []string{"Anemia", "Infection", "Blood disorders", "Overall health check"},
		},
		{
			ID: 2, Name: "Lipid Profile", Category: CategoryBlood, Icon: "💉",
			Price: 35, RequiresFasting: true, ResultDuration: "24 hours",
			Description: "Evaluates cholesterol levels and assesses the risk of cardiovascular diseases.",
			Parameters:  []string{"Total Cholesterol", "LDL", "HDL", "Triglycerides", "VLDL"},
			PreparationSteps: []string{
				"Fasting for 12-14 hours required",
				"Only water is allowed during fasting",
				"Avoid alcohol 24 hours before test",
				"Continue regular medications unless advised otherwise",
			},
			CommonIndications: []string{"Heart disease risk", "High cholesterol", "Diabetes management", "Health screening"},
		},
		{
			ID: 3, Name: "Blood Sugar (Fasting)", Category: CategoryDiabetes, Icon: "🍬",
			Price: 15, RequiresFasting: true, ResultDuration: "Same day",
			Description: "Measures blood glucose levels after fasting to screen for diabetes and prediabetes.",
			Parameters:  []string{"Glucose"},
			PreparationSteps: []string{
				"Fasting for 8-12 hours required",
				"Drink only water during fasting period",
				"Take morning medications after the test",
				"Schedule early morning appointment",
			},
			CommonIndications: []string{"Diabetes screening", "Prediabetes", "Blood sugar monitoring", "Health checkup"},
		},
		{
			ID: 4, Name: "HbA1c (Glycated Hemoglobin)", Category: CategoryDiabetes, Icon: "📊",
			Price: 45, RequiresFasting: false, ResultDuration: "24 hours",
			Description: "Measures average blood sugar levels over the past 2-3 months for diabetes management.",
			Parameters:  []string{"HbA1c percentage"},
			PreparationSteps: []string{
				"No fasting required",
				"Can be done at any time",
				"Continue regular diet and medications",
			},
			CommonIndications: []string{"Diabetes diagnosis", "Long-term glucose control", "Treatment monitoring"},
		},
		{
			ID: 5, Name: "Thyroid Profile (TSH, T3, T4)", Category: CategoryThyroid, Icon: "🦋",
			Price: 65, RequiresFasting: false, ResultDuration: "24-48 hours",
			Description: "Evaluates thyroid function and helps diagnose thyroid disorders.",
			Parameters:  []string{"TSH", "T3", "T4", "Free T3", "Free T4"},
			PreparationSteps: []string{
				"No fasting required",
				"Best done in the morning",
				"Inform about thyroid medications",
				"Avoid biotin supplements 2 days before",
			},
			CommonIndications: []string{"Thyroid disorders", "Weight changes", "Fatigue", "Metabolism issues"},
		},
		{
			ID: 6, Name: "Liver Function Test (LFT)", Category: CategoryLiver, Icon: "🫀",
			Price: 55, RequiresFasting: true, ResultDuration: "24 hours",
			Description: "Assesses liver health and detects liver diseases through enzyme and protein levels.",
			Parameters:  []string{"ALT", "AST", "ALP", "Bilirubin", "Albumin", "Total Protein"},
			PreparationSteps: []string{
				"Fasting for 8-12 hours recommended",
				"Avoid alcohol 24 hours before",
				"Inform about medications and supplements",
				"Stay well hydrated",
			},
			CommonIndications: []string{"Liver disease", "Hepatitis", "Jaundice", "Medication monitoring"},
		},
		{
			ID: 7, Name: "Kidney Function Test (KFT)", Category: CategoryKidney, Icon: "🫘",
			Price: 50, RequiresFasting: false, ResultDuration: "24 hours",
			Description: "Evaluates kidney function through blood and urine tests.",
			Parameters:  []string{"Creatinine", "BUN", "Uric Acid", "Electrolytes", "GFR"},
			PreparationSteps: []string{
				"No fasting required",
				"Adequate water intake before test",
				"Avoid vigorous exercise 24 hours before",
				"List all current medications",
			},
			CommonIndications: []string{"Kidney disease", "High blood pressure", "Diabetes", "Urinary problems"},
		},
		{
			ID: 8, Name: "Vitamin D (25-Hydroxy)", Category: CategoryBlood, Icon: "☀️",
			Price: 70, RequiresFasting: false, ResultDuration: "2-3 days",
			Description: "Measures vitamin D levels to assess bone health and immune function.",
			Parameters:  []string{"25-OH Vitamin D"},
			PreparationSteps: []string{
				"No fasting required",
				"Can be done at any time",
				"Inform about vitamin supplements",
			},
			CommonIndications: []string{"Vitamin D deficiency", "Bone health", "Fatigue", "Weak immunity"},
		},
		{
			ID: 9, Name: "Vitamin B12", Category: CategoryBlood, Icon: "💊",
			Price: 60, RequiresFasting: false, ResultDuration: "2-3 days",
			Description: "Measures vitamin B12 levels essential for nerve function and blood cell production.",
			Parameters:  []string{"Cobalamin (B12)"},
			PreparationSteps: []string{
				"No fasting required",
				"Avoid B12 supplements 2 days before",
				"Inform about dietary habits",
			},
			CommonIndications: []string{"Anemia", "Neurological symptoms", "Fatigue", "Vegetarian diet"},
		},
		{
			ID: 10, Name: "Electrocardiogram (ECG)", Category: CategoryCardiac, Icon: "💓",
			Price: 40, RequiresFasting: false, ResultDuration: "Same day",
			Description: "Records electrical activity of the heart to detect heart problems.",
			Parameters:  []string{"Heart rhythm", "Heart rate", "Electrical conduction"},
			PreparationSteps: []string{
				"No fasting required",
				"Wear comfortable clothing",
				"Avoid caffeine 2 hours before",
				"Relax before the test",
			},
			CommonIndications: []string{"Heart palpitations", "Chest pain", "Pre-surgery clearance", "Heart disease"},
		},
		{
			ID: 11, Name: "Chest X-Ray", Category: CategoryImaging, Icon: "🫁",
			Price: 80, RequiresFasting: false, ResultDuration: "Same day",
			Description: "Imaging test to examine the lungs, heart, and chest wall.",
			Parameters:  []string{"Lung fields", "Heart size", "Bone structure"},
			PreparationSteps: []string{
				"No fasting required",
				"Remove jewelry and metal objects",
				"Inform if pregnant",
				"Wear loose clothing",
			},
			CommonIndications: []string{"Respiratory problems", "Heart enlargement", "Lung infections", "Pre-employment"},
		},
		{
			ID: 12, Name: "Urine Routine Analysis", Category: CategoryBlood, Icon: "🧪",
			Price: 20, RequiresFasting: false, ResultDuration: "Same day",
			Description: "Examines urine for signs of kidney disease, urinary tract infections, and diabetes.",
			Parameters:  []string{"pH", "Protein", "Glucose", "Blood cells", "Bacteria"},
			PreparationSteps: []string{
				"Collect mid-stream urine sample",
				"Use clean container provided",
				"Preferably first morning sample",
				"Avoid contamination",
			},
			CommonIndications: []string{"UTI", "Kidney problems", "Diabetes", "Health screening"},
		},
		{
			ID: 13, Name: "Iron Studies", Category: CategoryBlood, Icon: "🔩",
			Price: 85, RequiresFasting: true, ResultDuration: "24-48 hours",
			Description: "Comprehensive test to evaluate iron levels and iron storage in the body.",
			Parameters:  []string{"Serum Iron", "TIBC", "Ferritin", "Transferrin Saturation"},
			PreparationSteps: []string{
				"Fasting for 8-12 hours recommended",
				"Avoid iron supplements 24 hours before",
				"Best done in the morning",
				"Inform about menstrual cycle",
			},
			CommonIndications: []string{"Anemia", "Iron deficiency", "Fatigue", "Heavy menstruation"},
		},
		{
			ID: 14, Name: "Prostate-Specific Antigen (PSA)", Category: CategoryBlood, Icon: "🎗️",
			Price: 75, RequiresFasting: false, ResultDuration: "24 hours",
			Description: "Screening test for prostate cancer and prostate health in men.",
			Parameters:  []string{"Total PSA", "Free PSA"},
			PreparationSteps: []string{
				"No fasting required",
				"Avoid ejaculation 48 hours before",
				"No vigorous exercise 24 hours before",
				"Avoid bike riding before test",
			},
			CommonIndications: []string{"Prostate cancer screening", "Prostate enlargement", "Urinary symptoms", "Age 50+ men"},
		},
		{
			ID: 15, Name: "CA-125 (Cancer Marker)", Category: CategoryBlood, Icon: "🎗️",
			Price: 90, RequiresFasting: false, ResultDuration: "2-3 days",
			Description: "Tumor marker test primarily used for ovarian cancer screening and monitoring.",
			Parameters:  []string{"CA-125 level"},
			PreparationSteps: []string{
				"No fasting required",
				"Inform about menstrual cycle",
				"Mention any pelvic conditions",
				"List current medications",
			},
			CommonIndications: []string{"Ovarian cancer screening", "Pelvic mass", "Treatment monitoring"},
		},
	}
}
