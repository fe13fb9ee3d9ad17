package extract

import "testing"

func TestArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"array with prose around it", "Here you go:\n[{\"title\":\"a\"}]\nEnjoy!", `[{"title":"a"}]`},
		{"no brackets", "no brackets here", "[]"},
		{"first open to last close", "prefix [1,2,3] suffix [4,5]", "[1,2,3] suffix [4,5]"},
		{"close before open", "] then [", "[]"},
		{"empty input", "", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Array(tt.in); got != tt.want {
				t.Errorf("Array(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeArray(t *testing.T) {
	fallback := []int{9, 9}

	if got := DecodeArray("values: [1, 2, 3] done", fallback); len(got) != 3 || got[0] != 1 {
		t.Errorf("DecodeArray = %v, want [1 2 3]", got)
	}
	if got := DecodeArray("[not json]", fallback); len(got) != 2 || got[0] != 9 {
		t.Errorf("DecodeArray on garbage = %v, want fallback", got)
	}
	if got := DecodeArray("[]", fallback); got == nil || len(got) != 0 {
		t.Errorf("DecodeArray on empty array = %v, want empty non-nil slice", got)
	}
}

func TestDecodeObject(t *testing.T) {
	type analysis struct {
		Score int `json:"score"`
	}
	fallback := analysis{Score: -1}

	if got := DecodeObject(`result: {"score": 7}`, fallback); got.Score != 7 {
		t.Errorf("DecodeObject = %+v, want score 7", got)
	}
	if got := DecodeObject("nothing structured", fallback); got.Score != -1 {
		t.Errorf("DecodeObject on garbage = %+v, want fallback", got)
	}
}

func TestObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"object with prose around it", "Sure! {\"score\": 2} Hope this helps.", `{"score": 2}`},
		{"no braces echoes input", "no braces", "no braces"},
		{"first open to last close", "x {1} y {2} z", "{1} y {2}"},
		{"close before open echoes input", "} then {", "} then {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Object(tt.in); got != tt.want {
				t.Errorf("Object(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
