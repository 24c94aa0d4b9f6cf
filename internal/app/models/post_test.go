package models

import (
	"errors"
	"testing"

	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestParsePostType(t *testing.T) {
	for _, valid := range []string{"announcements", "events", "resources", "lostfound", "courses"} {
		pt, err := ParsePostType(valid)
		if err != nil {
			t.Fatalf("ParsePostType(%q): %v", valid, err)
		}
		if string(pt) != valid {
			t.Fatalf("ParsePostType(%q) = %q", valid, pt)
		}
	}

	if _, err := ParsePostType("memes"); !errors.Is(err, apperrors.ErrInvalidPostType) {
		t.Fatalf("expected ErrInvalidPostType, got %v", err)
	}
}

func TestAdminOnly(t *testing.T) {
	if !PostTypeAnnouncements.AdminOnly() || !PostTypeEvents.AdminOnly() {
		t.Fatal("announcements and events must be admin only")
	}
	if PostTypeResources.AdminOnly() || PostTypeLostFound.AdminOnly() || PostTypeCourses.AdminOnly() {
		t.Fatal("student types must not be admin only")
	}
}

func TestFilterKey(t *testing.T) {
	cases := map[PostType]string{
		PostTypeAnnouncements: "",
		PostTypeEvents:        "",
		PostTypeResources:     "category",
		PostTypeLostFound:     "status",
		PostTypeCourses:       "cost_type",
	}
	for pt, want := range cases {
		if got := pt.FilterKey(); got != want {
			t.Fatalf("FilterKey(%s) = %q, want %q", pt, got, want)
		}
	}
}

func TestValidateTypeFieldsLostFound(t *testing.T) {
	p := &Post{PostType: PostTypeLostFound, Status: strPtr("Lost"), Category: strPtr("leaks")}
	if err := p.ValidateTypeFields(); err != nil {
		t.Fatalf("valid lostfound post: %v", err)
	}
	if p.Category != nil {
		t.Fatal("category must be cleared for lostfound posts")
	}

	p = &Post{PostType: PostTypeLostFound, Status: strPtr("Missing")}
	if err := p.ValidateTypeFields(); err == nil {
		t.Fatal("expected error for invalid status")
	}

	p = &Post{PostType: PostTypeLostFound}
	if err := p.ValidateTypeFields(); err == nil {
		t.Fatal("expected error for missing status")
	}
}

func TestValidateTypeFieldsCourses(t *testing.T) {
	p := &Post{PostType: PostTypeCourses, CostType: strPtr("Free")}
	if err := p.ValidateTypeFields(); err != nil {
		t.Fatalf("valid course post: %v", err)
	}

	p = &Post{PostType: PostTypeCourses, CostType: strPtr("Cheap")}
	if err := p.ValidateTypeFields(); err == nil {
		t.Fatal("expected error for invalid cost type")
	}
}

func TestValidateTypeFieldsResources(t *testing.T) {
	p := &Post{PostType: PostTypeResources, Category: strPtr("Textbooks")}
	if err := p.ValidateTypeFields(); err != nil {
		t.Fatalf("valid resource post: %v", err)
	}

	p = &Post{PostType: PostTypeResources}
	if err := p.ValidateTypeFields(); err == nil {
		t.Fatal("expected error for missing category")
	}
}

func TestValidateTypeFieldsAnnouncements(t *testing.T) {
	// Stray variant fields are dropped, not rejected.
	p := &Post{PostType: PostTypeAnnouncements, Status: strPtr("Lost"), CostType: strPtr("Free")}
	if err := p.ValidateTypeFields(); err != nil {
		t.Fatalf("announcement post: %v", err)
	}
	if p.Status != nil || p.CostType != nil {
		t.Fatal("variant fields must be cleared for announcements")
	}
}
