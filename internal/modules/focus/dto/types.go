package dto

type StatusOutput struct {
	Authorization           string
	Authorized              bool
	Blocking                bool
	SessionBlocking         bool
	Categories              []string
	Message                 string
	Error                   string
	CanRequestAuthorization bool
}

// StartBlockingInput selects categories by preset name, explicit list, or
// both (the union is applied).
type StartBlockingInput struct {
	Preset     string
	Categories []string
}

type PresetOutput struct {
	Name        string
	Description string
	Detail      string
	Categories  []string
}
