package dto

type PlayInput struct {
	Event   string
	Variant string
}
