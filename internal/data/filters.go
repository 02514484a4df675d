package data

import (
	"strings"

	"github.com/markponce/videostore/internal/validator"
)

const maxWindowValue = 10_000_000

// Window is a limit/offset slice of a sorted listing.
type Window struct {
	Limit        int
	Offset       int
	Sort         string
	SortSafelist []string
}

var (
	TitleWindow   = []string{"title"}
	ReleaseWindow = []string{"-release_date"}
)

func ValidateWindow(v *validator.Validator, w Window) {
	v.Check(w.Limit >= 0, "records", "must be zero or greater")
	v.Check(w.Limit <= maxWindowValue, "records", "must be a maximum of 10 million")
	v.Check(w.Offset >= 0, "offset", "must be zero or greater")
	v.Check(w.Offset <= maxWindowValue, "offset", "must be a maximum of 10 million")

	// Check that the sort parameter matches a value in the safelist.
	v.Check(validator.PermittedValue(w.Sort, w.SortSafelist...), "sort", "invalid sort value")
}

func (w Window) sortColumn() string {
	for _, safeValue := range w.SortSafelist {
		if w.Sort == safeValue {
			return strings.TrimPrefix(w.Sort, "-")
		}
	}

	panic("unsafe sort parameter: " + w.Sort)
}

func (w Window) sortDirection() string {
	if strings.HasPrefix(w.Sort, "-") {
		return "DESC"
	}
	return "ASC"
}

func (w Window) limit() int {
	return w.Limit
}

func (w Window) offset() int {
	return w.Offset
}
