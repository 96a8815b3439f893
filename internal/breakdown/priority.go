package breakdown

import (
	"strings"

	"github.com/nbelkacem/gestia/internal/domain"
)

// priorityMap maps model-produced priority strings, including French
// synonyms, to the three canonical values.
var priorityMap = map[string]domain.Priority{
	"high":    domain.PriorityHigh,
	"medium":  domain.PriorityMedium,
	"low":     domain.PriorityLow,
	"élevée":  domain.PriorityHigh,
	"moyenne": domain.PriorityMedium,
	"faible":  domain.PriorityLow,
}

// MapPriority normalizes a priority string case-insensitively. Anything
// unrecognized maps to medium.
func MapPriority(s string) domain.Priority {
	if p, ok := priorityMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return domain.PriorityMedium
}
