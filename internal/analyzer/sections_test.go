package analyzer

import (
	"reflect"
	"testing"
)

func TestDetectSectionsKeywordFallback(t *testing.T) {
	// Normalized text is single-spaced, so explicit headers rarely survive;
	// keyword fallback carries presence.
	text := "Experience: Increased sales by 30%. Education: BSc Computer Science. Skills: Python, SQL."

	sm := DetectSections(text)

	for _, name := range []string{"experience", "education", "skills"} {
		if !sm.Present[name] {
			t.Errorf("expected section %q present", name)
		}
	}
	for _, name := range []string{"contact", "summary", "projects"} {
		if sm.Present[name] {
			t.Errorf("expected section %q absent", name)
		}
	}
	if len(sm.Spans) != 0 {
		t.Errorf("expected no spans without explicit headers, got %v", sm.Spans)
	}
}

func TestDetectSectionsNothingFound(t *testing.T) {
	sm := DetectSections("just some random prose with no relevant words at all")

	for _, name := range SectionNames {
		if sm.Present[name] {
			t.Errorf("expected section %q absent", name)
		}
	}

	missing := sm.MissingSections()
	if !reflect.DeepEqual(missing, SectionNames) {
		t.Errorf("MissingSections() = %v, want all of %v", missing, SectionNames)
	}
}

func TestFindSectionSpans(t *testing.T) {
	// Explicit headers on their own lines (pre-normalization shape).
	text := "experience\nBuilt things at Acme\neducation\nBSc somewhere"

	spans := findSectionSpans(text)

	exp, ok := spans["experience"]
	if !ok {
		t.Fatal("expected a span for experience")
	}
	edu, ok := spans["education"]
	if !ok {
		t.Fatal("expected a span for education")
	}

	if got := text[exp.Start:exp.End]; got != "\nBuilt things at Acme\n" {
		t.Errorf("experience span content = %q", got)
	}
	if edu.End != len(text) {
		t.Errorf("last span should end at text end, got %d want %d", edu.End, len(text))
	}
}

func TestDetectSectionsHeaderWithColon(t *testing.T) {
	text := "skills:\nGo, SQL"
	sm := DetectSections(text)

	if !sm.Present["skills"] {
		t.Error("expected skills present via explicit header")
	}
	if _, ok := sm.Spans["skills"]; !ok {
		t.Error("expected a span for skills header")
	}
}

func TestMissingSectionsOrder(t *testing.T) {
	sm := SectionMap{Present: map[string]bool{
		"contact": true, "summary": false, "experience": true,
		"education": false, "skills": true, "projects": false,
	}}

	got := sm.MissingSections()
	want := []string{"summary", "education", "projects"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MissingSections() = %v, want %v", got, want)
	}
}
