package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/idelchi/diskanalyzer/internal/diskusage"
)

func TestSort(t *testing.T) {
	index := diskusage.Index{
		"/r/b": 20,
		"/r/a": 20,
		"/r/c": 10,
		"/r":   50,
	}

	tests := []struct {
		name    string
		key     string
		reverse bool
		want    []string
	}{
		{name: "size ascending", key: SortSize, want: []string{"/r/c", "/r/a", "/r/b", "/r"}},
		{name: "size descending keeps path tie-break", key: SortSize, reverse: true, want: []string{"/r", "/r/a", "/r/b", "/r/c"}},
		{name: "name ascending", key: SortName, want: []string{"/r", "/r/a", "/r/b", "/r/c"}},
		{name: "name descending", key: SortName, reverse: true, want: []string{"/r/c", "/r/b", "/r/a", "/r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, row := range Sort(index, tt.key, tt.reverse) {
				got = append(got, row.Path)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
