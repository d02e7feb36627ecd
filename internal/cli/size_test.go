package cli

import (
	"errors"
	"testing"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0 B"},
		{bytes: 1, want: "1.00 B"},
		{bytes: 1023, want: "1023.00 B"},
		{bytes: 1024, want: "1.00 KB"},
		{bytes: 1536, want: "1.50 KB"},
		{bytes: 1048575, want: "1.00 MB"},
		{bytes: 1048576, want: "1.00 MB"},
		{bytes: 5 * 1024 * 1024 * 1024, want: "5.00 GB"},
		{bytes: 1 << 40, want: "1.00 TB"},
		{bytes: 1 << 50, want: "1.00 PB"},
		{bytes: 1 << 60, want: "1024.00 PB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "0K", want: 0},
		{in: "512", want: 512},
		{in: "7B", want: 7},
		{in: "10K", want: 10 * 1024},
		{in: "10KB", want: 10 * 1024},
		{in: "10kib", want: 10 * 1024},
		{in: "1M", want: 1 << 20},
		{in: "2 MiB", want: 2 << 20},
		{in: "1.5G", want: 1536 << 20},
		{in: " 3T ", want: 3 << 40},
		{in: "1P", want: 1 << 50},
	}

	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if err != nil {
			t.Errorf("ParseSize(%q) error = %v", tt.in, err)

			continue
		}

		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseSize_invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "10X", "-5", "1.2.3", "K"} {
		if _, err := ParseSize(in); !errors.Is(err, ErrArgument) {
			t.Errorf("ParseSize(%q) error = %v, want ErrArgument", in, err)
		}
	}
}
