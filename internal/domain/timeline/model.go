package timeline

import "time"

// Category define los tipos de entrada soportados en la línea de tiempo.
// @Enum vaccine, illness, food, weight, behavior, vet_visit, other
type Category string

const (
	CategoryVaccine  Category = "vaccine"
	CategoryIllness  Category = "illness"
	CategoryFood     Category = "food"
	CategoryWeight   Category = "weight"
	CategoryBehavior Category = "behavior"
	CategoryVetVisit Category = "vet_visit"
	CategoryOther    Category = "other"
)

// Metadata son campos estructurados opcionales según la categoría.
// weight => WeightValue (kg); vet_visit => VetName.
type Metadata struct {
	WeightValue *float64 `json:"weight_value,omitempty"`
	VetName     string   `json:"vet_name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Entry es un registro de salud en la línea de tiempo de una mascota.
type Entry struct {
	ID    string
	PetID string

	Category    Category
	Title       string
	Description string

	// Fecha del hecho (no de la carga).
	Date time.Time

	Metadata Metadata

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidCategory(c Category) bool {
	switch c {
	case CategoryVaccine, CategoryIllness, CategoryFood, CategoryWeight,
		CategoryBehavior, CategoryVetVisit, CategoryOther:
		return true
	}
	return false
}
