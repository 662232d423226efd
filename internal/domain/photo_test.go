package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestTagList(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want []string
	}{
		{"three tags", "a,b,c", []string{"a", "b", "c"}},
		{"single tag", "beach", []string{"beach"}},
		{"empty", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Photo{Tags: tt.tags}
			if got := p.TagList(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TagList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExifRoundTrip(t *testing.T) {
	tags := map[string]string{
		"Image Make":        "TestCam",
		"EXIF DateTime":     "2026:01:02 03:04:05",
		"Image XResolution": "72",
	}

	encoded, err := EncodeExif(tags)
	if err != nil {
		t.Fatalf("EncodeExif() error = %v", err)
	}

	p := &Photo{ExifData: encoded}
	decoded, err := p.DecodeExif()
	if err != nil {
		t.Fatalf("DecodeExif() error = %v", err)
	}
	if !reflect.DeepEqual(decoded, tags) {
		t.Errorf("round trip = %v, want %v", decoded, tags)
	}
}

func TestDecodeExifEmpty(t *testing.T) {
	p := &Photo{}
	decoded, err := p.DecodeExif()
	if err != nil {
		t.Fatalf("DecodeExif() error = %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("DecodeExif() on empty field = %v, want empty map", decoded)
	}
}

func TestTimestampID(t *testing.T) {
	at := time.UnixMilli(1767312000123)
	if got := TimestampID(at); got != "1767312000123" {
		t.Errorf("TimestampID() = %q, want %q", got, "1767312000123")
	}
}
