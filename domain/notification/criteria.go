package notification

import (
	"regexp"
	"strconv"
	"strings"

	"greencity/domain/shared"
)

// Filter keys understood by BuildSpecification.
const (
	KeyUserID         = "user_id"
	KeyType           = "type"
	KeyProjectName    = "projectName"
	KeyProjectNameAlt = "project_name"
	KeyViewed         = "viewed"
	OperationEqual    = ":"
	criteriaSeparator = ","
)

var criteriaPattern = regexp.MustCompile(`(\w+)(:)(\w+),`)

// SearchCriteria is one key:value term of a criteriaFilter.
type SearchCriteria struct {
	Key       string
	Operation string
	Value     string
}

// ParseCriteria reads "key:value,key:value". Malformed terms are skipped.
func ParseCriteria(filter string) []SearchCriteria {
	matches := criteriaPattern.FindAllStringSubmatch(filter+criteriaSeparator, -1)
	criteria := make([]SearchCriteria, 0, len(matches))
	for _, m := range matches {
		criteria = append(criteria, SearchCriteria{Key: m[1], Operation: m[2], Value: m[3]})
	}
	return criteria
}

// BuildSpecification turns criteria into a conjunction scoped to userID.
// A user_id term never widens the scope: it is replaced by userID. Unknown
// keys match everything.
func BuildSpecification(userID int64, criteria []SearchCriteria) (shared.Specification[*Notification], error) {
	specs := make([]shared.Specification[*Notification], 0, len(criteria)+1)
	for _, c := range criteria {
		switch c.Key {
		case KeyUserID:
			continue
		case KeyType:
			t, err := ParseType(strings.ToUpper(c.Value))
			if err != nil {
				return nil, err
			}
			specs = append(specs, ByTypeSpecification{Type: t})
		case KeyProjectName, KeyProjectNameAlt:
			p, err := ParseProjectName(strings.ToUpper(c.Value))
			if err != nil {
				return nil, err
			}
			specs = append(specs, ByProjectNameSpecification{ProjectName: p})
		case KeyViewed:
			// unparsable values read as false
			viewed, _ := strconv.ParseBool(strings.ToLower(c.Value))
			specs = append(specs, ByViewedSpecification{Viewed: viewed})
		}
	}
	specs = append(specs, ByUserIDSpecification{UserID: userID})
	return shared.AllOf(specs...), nil
}
