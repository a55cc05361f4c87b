package competitions

import (
	"testing"
	"time"
)

func TestSetDocumentClearWinsOverValue(t *testing.T) {
	dl := time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC)
	p := CompetitionPatch{RegistrationDeadline: &dl, ClearRegistrationDeadline: true}

	set := p.setDocument()
	v, ok := set["registrationDeadline"]
	if !ok || v != nil {
		t.Errorf("registrationDeadline = %v (present %v), want explicit nil", v, ok)
	}
}

func TestFullPatchClearsNilDates(t *testing.T) {
	set := FullPatch(Competition{Name: "Hack Day", About: "desc"}).setDocument()

	for _, field := range []string{"dateStart", "dateEnd", "registrationDeadline"} {
		v, ok := set[field]
		if !ok || v != nil {
			t.Errorf("%s = %v (present %v), want explicit nil", field, v, ok)
		}
	}
	if set["name"] != "Hack Day" {
		t.Errorf("name = %v", set["name"])
	}
}

func TestFullPatchKeepsSetDates(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	set := FullPatch(Competition{Name: "Hack Day", DateStart: &start}).setDocument()

	if got, ok := set["dateStart"].(time.Time); !ok || !got.Equal(start) {
		t.Errorf("dateStart = %v, want %v", set["dateStart"], start)
	}
}
