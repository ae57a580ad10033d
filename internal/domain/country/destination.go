package country

import (
	"fmt"
	"slices"
)

// Audience is the user type a featured destination is pitched to.
type Audience string

// Audiences. Anything that is not a tourist sees the immigrant picks.
const (
	AudienceTourist   Audience = "tourist"
	AudienceImmigrant Audience = "immigrant"
)

// ParseAudience maps a stored user type to an audience; empty defaults to tourist.
func ParseAudience(userType string) Audience {
	if userType == "" || userType == string(AudienceTourist) {
		return AudienceTourist
	}
	return AudienceImmigrant
}

// Destination is a featured city shown above the country list.
type Destination struct {
	Country     string
	City        string
	Description string
	Highlights  []string
	Audience    Audience
}

// Validate checks a destination against its country.
func (d Destination) Validate(countries []Country) error {
	if d.Audience != AudienceTourist && d.Audience != AudienceImmigrant {
		return fmt.Errorf("destination %s/%s: unknown audience %q", d.Country, d.City, d.Audience)
	}
	c, ok := Find(countries, d.Country)
	if !ok {
		return fmt.Errorf("destination %s/%s: unknown country", d.Country, d.City)
	}
	if !c.HasCity(d.City) {
		return fmt.Errorf("destination %s/%s: city not listed for %s", d.Country, d.City, c.Name)
	}
	return nil
}

// Featured keeps the destinations pitched to audience, in catalog order.
func Featured(dests []Destination, audience Audience) []Destination {
	out := slices.Clone(dests)
	return slices.DeleteFunc(out, func(d Destination) bool { return d.Audience != audience })
}
