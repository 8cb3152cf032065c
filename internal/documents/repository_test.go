package documents

import "testing"

func TestTextualContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/plain", true},
		{"text/html; charset=iso-8859-1", true},
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/xml", true},
		{"application/xhtml+xml", true},
		{"application/pdf", false},
		{"application/pdf; version=1.7", false},
		{"application/octet-stream", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := textualContentType(tt.contentType); got != tt.want {
				t.Errorf("textualContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
