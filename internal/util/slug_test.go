package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"polish diacritics", "Ogłoszenia Urzędu", "ogloszenia-urzedu"},
		{"stroked l", "Załatw sprawę", "zalatw-sprawe"},
		{"punctuation", "Budżet, finanse & majątek!", "budzet-finanse-majatek"},
		{"multiple spaces", "a   b", "a-b"},
		{"leading trailing", " -x- ", "x"},
		{"already slug", "nabor-pracownikow", "nabor-pracownikow"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"a", "abc-def", "x1-2y", "aktualnosci"}
	invalid := []string{"", "-abc", "abc-", "a--b", "Abc", "a b", "ż"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"some-article-title", "Some Article Title"},
		{"przetargi", "Przetargi"},
		{"a--b", "A  B"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TitleFromSlug(tt.input); got != tt.want {
			t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
