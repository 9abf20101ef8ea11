package ingest

// Wellness status labels.
const (
	StatusWell   = "Well"
	StatusUnwell = "Unwell"
)

// BMI category labels.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// Unwell thresholds. All comparisons are strict except BMI, which is >=.
const (
	maxGulaPuasa   = 120
	maxGulaSewaktu = 200
	maxCholesterol = 240
	maxAsamUrat    = 7
	obeseBMI       = 30
)

// Vitals are the inputs of ComputeStatus. Nil means not measured.
type Vitals struct {
	GulaDarahPuasa   *float64
	GulaDarahSewaktu *float64
	Cholesterol      *float64
	AsamUrat         *float64
	BMI              *float64
}

// ComputeBMICategory classifies a BMI value. It returns "" for nil.
func ComputeBMICategory(bmi *float64) string {
	if bmi == nil {
		return ""
	}
	switch v := *bmi; {
	case v < 18.5:
		return BMIUnderweight
	case v < 25:
		return BMINormal
	case v < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// ComputeStatus returns Unwell when any threshold is exceeded. Missing values
// count as zero, so a record with nothing measured is Well.
func ComputeStatus(v Vitals) string {
	if valueOf(v.GulaDarahPuasa) > maxGulaPuasa ||
		valueOf(v.GulaDarahSewaktu) > maxGulaSewaktu ||
		valueOf(v.Cholesterol) > maxCholesterol ||
		valueOf(v.AsamUrat) > maxAsamUrat ||
		valueOf(v.BMI) >= obeseBMI {
		return StatusUnwell
	}
	return StatusWell
}

func valueOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
