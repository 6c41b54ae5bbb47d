package proximity

import "strings"

// Unknown replaces absent hospital names and types.
const Unknown = "Unknown"

// HospitalView is the wire form of a ranked hospital. Capacity counters are
// pointers so absent values encode as null.
type HospitalView struct {
	Name                   string  `json:"hospital_name"`
	Type                   string  `json:"type"`
	Distance               float64 `json:"distance"`
	ICUBedsAvailable       *int    `json:"icu_beds_available"`
	EmergencyBedsAvailable *int    `json:"emergency_beds_available"`
	AmbulancesAvailable    *int    `json:"ambulances_available"`
}

func Sanitize(r Ranked) HospitalView {
	return HospitalView{
		Name:                   orUnknown(r.Hospital.Name),
		Type:                   orUnknown(r.Hospital.Type),
		Distance:               r.DistanceKm,
		ICUBedsAvailable:       copyInt(r.Hospital.ICUBedsAvailable),
		EmergencyBedsAvailable: copyInt(r.Hospital.EmergencyBedsAvailable),
		AmbulancesAvailable:    copyInt(r.Hospital.AmbulancesAvailable),
	}
}

func SanitizeAll(results []Ranked) []HospitalView {
	views := make([]HospitalView, 0, len(results))
	for _, r := range results {
		views = append(views, Sanitize(r))
	}
	return views
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
