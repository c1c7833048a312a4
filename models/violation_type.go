package models

// ViolationType is an entry of the violation catalog citizens pick from.
type ViolationType struct {
	ID            string `json:"id" yaml:"id" gorm:"primaryKey;type:varchar(36)"`
	Label         string `json:"label" yaml:"label" gorm:"uniqueIndex;not null"`
	DefaultPoints int    `json:"default_points" yaml:"default_points" gorm:"not null;default:0"`
}

type ViolationTypeRequest struct {
	Label         string `json:"label" binding:"required,min=2" conform:"trim"`
	DefaultPoints int    `json:"default_points" binding:"min=0"`
}

// DefaultPointsFor sums the default points of the given labels. Unknown labels count zero.
func DefaultPointsFor(labels []string, catalog []ViolationType) int {
	byLabel := make(map[string]int, len(catalog))
	for _, vt := range catalog {
		byLabel[vt.Label] = vt.DefaultPoints
	}
	total := 0
	for _, l := range labels {
		total += byLabel[l]
	}
	return total
}
