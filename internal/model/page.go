package model

// RecordKind is the fixed set of searchable record categories.
type RecordKind string

const (
	KindCar     RecordKind = "car"
	KindPage    RecordKind = "page"
	KindFeature RecordKind = "feature"
	KindService RecordKind = "service"
)

// AllKinds returns every record kind.
func AllKinds() []RecordKind {
	return []RecordKind{KindCar, KindPage, KindFeature, KindService}
}

// IsValid checks if the kind is one of the known kinds.
func (k RecordKind) IsValid() bool {
	switch k {
	case KindCar, KindPage, KindFeature, KindService:
		return true
	}
	return false
}

// ContentPage is a static, non-vehicle entry of the site such as the export
// services or contact pages.
type ContentPage struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Kind        RecordKind `json:"kind"`
	URL         string     `json:"url"`
	Author      string     `json:"author,omitempty"`
	Date        string     `json:"date,omitempty"`
}
