package dto

type ProviderInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Priority     int
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type RouteRequest struct {
	OriginLat      float64
	OriginLon      float64
	DestinationLat float64
	DestinationLon float64
}

type RouteResponse struct {
	Provider string
	Meters   float64
	Seconds  float64
}

type ShieldInput struct {
	Categories []string
}

type PlayInput struct {
	Event   string
	Variant string
	Sound   string
	Haptic  bool
}
