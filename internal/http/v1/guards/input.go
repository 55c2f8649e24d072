package guards

import "github.com/janisto/guardhire/internal/platform/pagination"

// GuardsListInput defines query parameters for listing guards.
type GuardsListInput struct {
	pagination.Params
	Role     string `query:"role"     doc:"Only guards offering this role" example:"Bouncer" enum:"Security Guard,Bouncer,Event Security,Bodyguard,Caretaker"`
	Location string `query:"location" doc:"Case-insensitive location substring" example:"pune"`
}
