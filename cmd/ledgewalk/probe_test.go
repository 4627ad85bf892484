package main

import (
	"testing"
)

func TestParseStroke(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0,0,60,60", false},
		{" 1.5, 2 ,3,4 ", false},
		{"1,2,3", true},
		{"a,b,c,d", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			seg, err := parseStroke(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.in == "0,0,60,60" && (seg.B.X != 60 || seg.B.Y != 60) {
				t.Errorf("Expected end (60, 60), got %v", seg.B)
			}
		})
	}
}
