package registration

import (
	"slices"
	"strings"
)

// Role is the kind of work a guard offers.
type Role string

const (
	RoleSecurityGuard Role = "Security Guard"
	RoleBouncer       Role = "Bouncer"
	RoleEventSecurity Role = "Event Security"
	RoleBodyguard     Role = "Bodyguard"
	RoleCaretaker     Role = "Caretaker"
)

var roles = []Role{RoleSecurityGuard, RoleBouncer, RoleEventSecurity, RoleBodyguard, RoleCaretaker}

// Roles returns every selectable role in display order.
func Roles() []Role {
	return slices.Clone(roles)
}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

// GuardRegistration is a fully validated guard sign-up.
type GuardRegistration struct {
	FullName    string
	Email       string
	Password    string
	Phone       string
	Role        Role
	Experience  float64
	HourlyRate  *float64
	DailyRate   *float64
	MonthlyRate *float64
	// Bio and Skills are empty when the user left them blank.
	Bio            string
	Skills         string
	Location       string
	ProfilePicture Upload
	AgreeTerms     bool
}

// SkillList splits the comma-separated skills text into trimmed, non-empty entries.
func (g *GuardRegistration) SkillList() []string {
	var out []string
	for s := range strings.SplitSeq(g.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CompanyRegistration is a fully validated company sign-up. Website and Description
// keep the empty string when left blank.
type CompanyRegistration struct {
	CompanyName string
	Email       string
	Password    string
	Website     string
	Location    string
	Description string
	AgreeTerms  bool
}
