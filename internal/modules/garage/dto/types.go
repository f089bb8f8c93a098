package dto

type VehicleOutput struct {
	ID               string
	Name             string
	Type             string
	TypeLabel        string
	Unlocked         bool
	TimesUsed        int
	TotalMiles       float64
	SpeedRating      int
	ComfortRating    int
	EfficiencyRating int
	UnlockMiles      float64
}

type RecordDistanceInput struct {
	VehicleID string
	Miles     float64
}

type RecordDistanceOutput struct {
	Vehicle       VehicleOutput
	FleetMiles    float64
	NewlyUnlocked []VehicleOutput
}
