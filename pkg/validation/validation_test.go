package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestPathBuilding(t *testing.T) {
	tests := []struct {
		got  Path
		want string
	}{
		{Option("patches"), "town.patches"},
		{Buildings.Index(4).Field("shape"), "buildings[4].shape"},
		{Gates.Index(0), "gates[0]"},
		{Districts.Field("outside_wall"), "districts.outside_wall"},
		{Path("").Field("roads"), "roads"},
	}
	for _, tt := range tests {
		if string(tt.got) != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestPathWithin(t *testing.T) {
	tests := []struct {
		path, prefix Path
		want         bool
	}{
		{"buildings[3].shape", Buildings, true},
		{"buildings[3].shape", Buildings.Index(3), true},
		{"buildings[3]", Buildings.Index(3), true},
		{"buildings[31]", Buildings.Index(3), false},
		{"water_border", Water, false},
		{"town.water", Option("water"), true},
		{"town.walls", Option("water"), false},
	}
	for _, tt := range tests {
		if got := tt.path.Within(tt.prefix); got != tt.want {
			t.Errorf("%q within %q: expected %v, got %v", tt.path, tt.prefix, tt.want, got)
		}
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport()
	if !r.Valid || r.Err() != nil {
		t.Error("new report should be valid")
	}
	if len(r.Errors) != 0 || len(r.Warnings) != 0 || len(r.Info) != 0 {
		t.Error("new report should have empty slices")
	}
	if r.Summary != "0 errors, 0 warnings, 0 info" {
		t.Errorf("unexpected summary: %s", r.Summary)
	}
}

func TestAddSetsSeverity(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelOptions, Message: "patches out of range", Path: Option("patches")})
	r.AddWarning(Result{Level: LevelGeometry, Message: "building has no description", Path: Buildings.Index(2).Field("description")})
	r.AddInfo(Result{Level: LevelGeometry, Message: "no water border"})

	if r.Valid {
		t.Error("report with error should be invalid")
	}
	if r.Errors[0].Severity != SeverityError || r.Warnings[0].Severity != SeverityWarning || r.Info[0].Severity != SeverityInfo {
		t.Error("Add* should set the matching severity")
	}
	if r.Summary != "1 errors, 1 warnings, 1 info" {
		t.Errorf("unexpected summary: %s", r.Summary)
	}
}

func TestWarningsKeepReportValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelGeometry, Message: "tower stands in a gate", Path: Towers.Index(1)})
	r.AddInfo(Result{Level: LevelAnalytics, Message: "farm patches without buildings"})
	if !r.Valid || r.Err() != nil {
		t.Error("warnings and notes should not invalidate the report")
	}
}

func TestResultString(t *testing.T) {
	located := Result{Level: LevelGeometry, Message: "building has no area", Path: Buildings.Index(7).Field("shape")}
	if got := located.String(); got != "[geometry] buildings[7].shape: building has no area" {
		t.Errorf("unexpected text: %s", got)
	}
	loose := Result{Level: LevelGeometry, Message: "town geometry is nil"}
	if got := loose.String(); got != "[geometry] town geometry is nil" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestReportAt(t *testing.T) {
	r := NewReport()
	r.AddInfo(Result{Level: LevelGeometry, Message: "note", Path: Buildings.Index(1)})
	r.AddWarning(Result{Level: LevelGeometry, Message: "overlap", Path: Buildings.Index(1).Field("shape"), Subject: "b-1"})
	r.AddError(Result{Level: LevelGeometry, Message: "empty id", Path: Buildings.Index(1).Field("id")})
	r.AddError(Result{Level: LevelGeometry, Message: "too few points", Path: Roads.Index(0)})
	r.AddWarning(Result{Level: LevelGeometry, Message: "other building", Path: Buildings.Index(12)})

	got := r.At(Buildings.Index(1))
	if len(got) != 3 {
		t.Fatalf("expected 3 results for buildings[1], got %d", len(got))
	}
	if got[0].Severity != SeverityError || got[2].Severity != SeverityInfo {
		t.Errorf("errors should come first and notes last, got %s then %s", got[0].Severity, got[2].Severity)
	}
	if got[1].Subject != "b-1" {
		t.Errorf("expected the overlap to name b-1, got %q", got[1].Subject)
	}
	if n := len(r.At(Gates)); n != 0 {
		t.Errorf("expected nothing about gates, got %d", n)
	}
}

func TestReportErr(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelOptions, Message: "patches must be at least 4", Path: Option("patches")})
	r.AddError(Result{Level: LevelOptions, Message: "max_attempts must not be negative", Path: Option("max_attempts")})

	err := r.Err()
	if err == nil {
		t.Fatal("invalid report should produce an error")
	}
	for _, want := range []string{"town.patches: patches must be at least 4", "town.max_attempts: max_attempts"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err)
		}
	}

	merged := NewReport()
	merged.Merge(&Report{Valid: false})
	if err := merged.Err(); err == nil || errors.Unwrap(err) != nil {
		t.Errorf("an invalid report without results should still fail plainly, got %v", err)
	}
}

func TestMerge(t *testing.T) {
	r1 := NewReport()
	r1.AddWarning(Result{Level: LevelOptions, Message: "warn1"})

	r2 := NewReport()
	r2.AddError(Result{Level: LevelGeometry, Message: "err1"})
	r2.AddWarning(Result{Level: LevelGeometry, Message: "warn2"})
	r2.AddInfo(Result{Level: LevelGeometry, Message: "info1"})

	r1.Merge(r2)

	if r1.Valid {
		t.Error("merged report should be invalid when other has errors")
	}
	if len(r1.Errors) != 1 || len(r1.Warnings) != 2 || len(r1.Info) != 1 {
		t.Errorf("unexpected counts after merge: %s", r1.Summary)
	}
	if r1.Summary != "1 errors, 2 warnings, 1 info" {
		t.Errorf("unexpected summary: %s", r1.Summary)
	}
}

func TestMergeValidIntoValid(t *testing.T) {
	r1 := NewReport()
	r2 := NewReport()
	r2.AddInfo(Result{Level: LevelOptions, Message: "note", Path: Option("water")})

	r1.Merge(r2)

	if !r1.Valid {
		t.Error("merging two valid reports should stay valid")
	}
	if len(r1.At(TownOptions)) != 1 {
		t.Errorf("expected the note under town, got %s", r1.Summary)
	}
}
