package models

// Course is one bookable training product (CBT, DAS, Module 1/2 and so on),
// owned by the upstream school API.
type Course struct {
	ID                string  `json:"id"`
	CourseName        string  `json:"course_name"`
	Description       string  `json:"description,omitempty"`
	SchoolOneOffPrice float64 `json:"school_one_off_price"`
	Duration          string  `json:"duration,omitempty"`
	LicenceRequired   string  `json:"licence_required,omitempty"`
}

// Location is a training site offering one or more courses.
type Location struct {
	ID           string `json:"id"`
	LocationName string `json:"location_name"`
	Address      string `json:"address,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// LicenceType is a form-select enumeration from the upstream API.
type LicenceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VehicleType is a form-select enumeration scoped to a (course, location) pair.
type VehicleType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
