package guards

// Guard is the public representation of a listed guard.
type Guard struct {
	ID                string   `json:"id"                          doc:"Guard identifier"             example:"g-1001"`
	Name              string   `json:"name"                        doc:"Display name"                 example:"Asha Patil"`
	Role              string   `json:"role"                        doc:"Kind of work offered"         example:"Security Guard"`
	Location          string   `json:"location"                    doc:"City or region"               example:"Pune"`
	HourlyRate        *float64 `json:"hourlyRate,omitempty"        doc:"Hourly rate"                  example:"25"`
	DailyRate         *float64 `json:"dailyRate,omitempty"         doc:"Daily rate"                   example:"180"`
	MonthlyRate       *float64 `json:"monthlyRate,omitempty"       doc:"Monthly rate"                 example:"3200"`
	Rating            float64  `json:"rating"                      doc:"Average rating"               example:"4.7"`
	Experience        float64  `json:"experience"                  doc:"Years of experience"          example:"6"`
	Skills            []string `json:"skills"                      doc:"Skills in the order entered"`
	Bio               string   `json:"bio,omitempty"               doc:"Short biography"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty" doc:"Profile picture location"     format:"uri"`
}
