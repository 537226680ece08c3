package checksum

import "testing"

func TestETag_Stable(t *testing.T) {
	a, b := ETag([]byte(`{"events":[]}`)), ETag([]byte(`{"events":[]}`))
	if a != b {
		t.Errorf("etag not stable: %s vs %s", a, b)
	}
	if a == ETag([]byte(`{"events":[{}]}`)) {
		t.Error("different bodies share an etag")
	}
	if len(a) != 34 || a[0] != '"' || a[33] != '"' {
		t.Errorf("etag = %s", a)
	}
}

func TestMatch(t *testing.T) {
	tag := ETag([]byte("x"))
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{tag, true},
		{"*", true},
		{`"other", ` + tag, true},
		{"W/" + tag, true},
		{`"other"`, false},
	}
	for _, tt := range tests {
		if got := Match(tt.header, tag); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
