package news

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Annual Hackathon 2026!  ", "annual-hackathon-2026"},
		{"C++ & Go: A Comparison", "c-go-a-comparison"},
		{"---already---slugged---", "already-slugged"},
		{"ALLCAPS", "allcaps"},
		{"multiple   spaces", "multiple-spaces"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryAnnouncement, CategoryAchievement, CategoryEventRecap, CategoryTutorial, CategoryGeneral} {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	if Category("opinion").Valid() {
		t.Error("unknown category accepted")
	}
}
