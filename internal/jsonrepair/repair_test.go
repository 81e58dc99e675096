package jsonrepair

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestObject_DirectParse(t *testing.T) {
	obj, err := Object(`{"name": "Ada", "skills": ["Go"]}`)
	if err != nil {
		t.Fatalf("Object() error = %v", err)
	}
	if obj["name"] != "Ada" {
		t.Errorf("name = %v, want Ada", obj["name"])
	}
}

func TestObject_FencedEqualsUnfenced(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json tagged fence", "```json\n{\"a\": 1, \"b\": [true]}\n```"},
		{"untagged fence", "```\n{\"a\": 1, \"b\": [true]}\n```"},
		{"fence with trailing spaces", "```json  \n{\"a\": 1, \"b\": [true]}\n```  "},
	}

	want, err := Object(`{"a": 1, "b": [true]}`)
	if err != nil {
		t.Fatalf("unfenced parse failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Object(tt.raw)
			if err != nil {
				t.Fatalf("Object() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("fenced result %v != unfenced %v", got, want)
			}
		})
	}
}

func TestObject_BraceBounded(t *testing.T) {
	raw := "Sure! Here is the extracted data:\n{\"role\": \"Engineer\"}\nLet me know if you need more."
	obj, err := Object(raw)
	if err != nil {
		t.Fatalf("Object() error = %v", err)
	}
	if obj["role"] != "Engineer" {
		t.Errorf("role = %v, want Engineer", obj["role"])
	}
}

func TestObject_TrailingCommaEqualsClean(t *testing.T) {
	tests := []struct {
		name  string
		dirty string
		clean string
	}{
		{"comma before brace", `{"a": 1,}`, `{"a": 1}`},
		{"comma before bracket", `{"a": [1, 2,]}`, `{"a": [1, 2]}`},
		{"comma with whitespace", "{\"a\": 1,\n}", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Object(tt.dirty)
			if err != nil {
				t.Fatalf("Object(dirty) error = %v", err)
			}
			want, err := Object(tt.clean)
			if err != nil {
				t.Fatalf("Object(clean) error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("repaired %v != clean %v", got, want)
			}
		})
	}
}

func TestObject_TrailingCommaInsidePreamble(t *testing.T) {
	// Exercises the last cascade stage: comma repair plus brace-bounded search.
	raw := "Result below.\n{\"skills\": [\"Go\", \"Python\",],}\nDone."
	obj, err := Object(raw)
	if err != nil {
		t.Fatalf("Object() error = %v", err)
	}
	skills, ok := obj["skills"].([]any)
	if !ok || len(skills) != 2 {
		t.Errorf("skills = %v, want two entries", obj["skills"])
	}
}

func TestObject_Unparsable(t *testing.T) {
	long := strings.Repeat("not json at all ", 40)
	_, err := Object(long)

	var unparsable *UnparsableError
	if !errors.As(err, &unparsable) {
		t.Fatalf("error = %v, want *UnparsableError", err)
	}
	if len(unparsable.Snippet) != 300 {
		t.Errorf("snippet length = %d, want 300", len(unparsable.Snippet))
	}
}

func TestArray(t *testing.T) {
	type score struct {
		Index int `json:"index"`
		Score int `json:"score"`
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"plain array", `[{"index": 0, "score": 90}]`},
		{"fenced array", "```json\n[{\"index\": 0, \"score\": 90}]\n```"},
		{"array with preamble", "Here you go: [{\"index\": 0, \"score\": 90}] hope that helps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scores []score
			if err := Array(tt.raw, &scores); err != nil {
				t.Fatalf("Array() error = %v", err)
			}
			if len(scores) != 1 || scores[0].Score != 90 {
				t.Errorf("scores = %v, want one entry with score 90", scores)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	got := StripFences("```json\n{\"k\": 1}\n```")
	if got != `{"k": 1}` {
		t.Errorf("StripFences() = %q", got)
	}
}

func TestRemoveTrailingCommas(t *testing.T) {
	got := RemoveTrailingCommas(`{"a": [1,], "b": 2,}`)
	if got != `{"a": [1], "b": 2}` {
		t.Errorf("RemoveTrailingCommas() = %q", got)
	}
}
