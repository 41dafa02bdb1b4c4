package index

// Shoe level thresholds on the scaled 0-100 index.
const (
	shoeCautionMin   = 30
	shoeWarningMin   = 50
	shoeCriticalMin  = 70
	shoeEmergencyMin = 85

	ShoeLevelMin = 1
	ShoeLevelMax = 5
)

// Shoe statuses presented with the 1-5 gauge.
const (
	StatusStable    = "Stable"
	StatusCaution   = "Caution"
	StatusWarning   = "Warning"
	StatusCritical  = "Critical"
	StatusEmergency = "Emergency"
)

// ShoeLevel maps a scaled index value to the 1-5 gauge level and its status.
func ShoeLevel(score float64) (int, string) {
	switch {
	case score < shoeCautionMin:
		return 1, StatusStable
	case score < shoeWarningMin:
		return 2, StatusCaution
	case score < shoeCriticalMin:
		return 3, StatusWarning
	case score < shoeEmergencyMin:
		return 4, StatusCritical
	default:
		return 5, StatusEmergency
	}
}
