package data

import (
	"testing"

	"github.com/markponce/videostore/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name       string
		window     Window
		wantErrors map[string]string
	}{
		{
			name:       "valid",
			window:     Window{Limit: 10, Offset: 0, Sort: "title", SortSafelist: TitleWindow},
			wantErrors: map[string]string{},
		},
		{
			name:       "zero records",
			window:     Window{Limit: 0, Offset: 5, Sort: "-release_date", SortSafelist: ReleaseWindow},
			wantErrors: map[string]string{},
		},
		{
			name:   "negative values",
			window: Window{Limit: -1, Offset: -2, Sort: "title", SortSafelist: TitleWindow},
			wantErrors: map[string]string{
				"records": "must be zero or greater",
				"offset":  "must be zero or greater",
			},
		},
		{
			name:   "too large",
			window: Window{Limit: 10_000_001, Offset: 0, Sort: "title", SortSafelist: TitleWindow},
			wantErrors: map[string]string{
				"records": "must be a maximum of 10 million",
			},
		},
		{
			name:   "unsafe sort",
			window: Window{Limit: 1, Sort: "id; DROP TABLE movies", SortSafelist: TitleWindow},
			wantErrors: map[string]string{
				"sort": "invalid sort value",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateWindow(v, tt.window)
			assert.Equal(t, tt.wantErrors, v.Errors)
		})
	}
}

func TestWindowSort(t *testing.T) {
	w := Window{Sort: "-release_date", SortSafelist: ReleaseWindow}
	assert.Equal(t, "release_date", w.sortColumn())
	assert.Equal(t, "DESC", w.sortDirection())

	w = Window{Sort: "title", SortSafelist: TitleWindow}
	assert.Equal(t, "title", w.sortColumn())
	assert.Equal(t, "ASC", w.sortDirection())

	assert.Panics(t, func() {
		Window{Sort: "overview", SortSafelist: TitleWindow}.sortColumn()
	})
}
