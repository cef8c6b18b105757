package models

import (
	"testing"
)

func TestDiagnosisListScanLegacyRecords(t *testing.T) {
	// Historical rows carry email authorship and may lack id and createdAt
	raw := `[
		{"createdBy":"dr.a@clinic.test","icd11":"CA40","disease":"Pneumonia"},
		{"id":"diag-1","createdBy":"5f1c","notes":"follow up in 2 weeks","createdAt":"2023-04-01T10:00:00Z"}
	]`

	var list DiagnosisList
	if err := list.Scan([]byte(raw)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 diagnoses, got %d", len(list))
	}
	if list[0].ID != "" {
		t.Errorf("legacy diagnosis should have empty id, got %q", list[0].ID)
	}
	if list[0].CreatedAt != nil {
		t.Errorf("legacy diagnosis should have nil createdAt")
	}
	if list[0].CreatedBy != "dr.a@clinic.test" {
		t.Errorf("unexpected createdBy: %q", list[0].CreatedBy)
	}
	if list[1].ID != "diag-1" || list[1].CreatedAt == nil {
		t.Errorf("modern diagnosis parsed incorrectly: %+v", list[1])
	}
}

func TestDiagnosisListScanNil(t *testing.T) {
	var list DiagnosisList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list, got %v", list)
	}
}

func TestDiagnosisListValueEmpty(t *testing.T) {
	var list DiagnosisList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil list should serialize as [], got %s", v)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	p := Profile{"organizationId": "6634", "name": "Dr. Ada"}

	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var got Profile
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if got.OrganizationID() != "6634" {
		t.Errorf("expected organizationId 6634, got %q", got.OrganizationID())
	}
	if got["name"] != "Dr. Ada" {
		t.Errorf("expected name to survive round trip, got %v", got["name"])
	}
}

func TestProfileOrganizationIDMissing(t *testing.T) {
	var p Profile
	if p.OrganizationID() != "" {
		t.Errorf("nil profile should yield empty organization id")
	}
	p = Profile{"organizationId": 42}
	if p.OrganizationID() != "" {
		t.Errorf("non-string organizationId should yield empty string")
	}
}
