package lookup

import (
	"errors"
	"reflect"
	"testing"
)

var testEntries = []Entry[string]{
	{Value: "cart", Name: "cart"},
	{Value: "car", Name: "car"},
	{Value: "dog", Name: "dog", Aliases: []string{"pup"}},
	{Value: "dove", Name: "dove"},
}

func TestFindExact(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"cart", "cart"},
		{"car", "car"}, // exact beats being a prefix of cart
		{"dog", "dog"},
		{"pup", "dog"}, // alias
		{"DOG", "dog"},
		{"PuP", "dog"},
	}
	for _, tt := range tests {
		got, err := Find(tt.query, testEntries)
		if err != nil {
			t.Errorf("Find(%q) error: %v", tt.query, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Find(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestFindPrefix(t *testing.T) {
	got, err := Find("dov", testEntries)
	if err != nil {
		t.Fatalf("Find(dov) error: %v", err)
	}
	if got != "dove" {
		t.Errorf("Find(dov) = %q, want dove", got)
	}
}

func TestFindNotFound(t *testing.T) {
	_, err := Find("horse", testEntries)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Find(horse) error = %v, want NotFoundError", err)
	}
	if nf.Query != "horse" {
		t.Errorf("Query = %q, want horse", nf.Query)
	}
}

func TestFindAliasIsExactOnly(t *testing.T) {
	// "pu" is a prefix of the alias "pup" but of no canonical name.
	_, err := Find("pu", testEntries)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Find(pu) error = %v, want NotFoundError", err)
	}
}

func TestFindAmbiguous(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"ca", []string{"cart", "car"}},
		{"d", []string{"dog", "dove"}},
	}
	for _, tt := range tests {
		_, err := Find(tt.query, testEntries)
		var amb *AmbiguousError
		if !errors.As(err, &amb) {
			t.Errorf("Find(%q) error = %v, want AmbiguousError", tt.query, err)
			continue
		}
		if !reflect.DeepEqual(amb.Candidates, tt.want) {
			t.Errorf("Find(%q) candidates = %v, want %v", tt.query, amb.Candidates, tt.want)
		}
	}
}
