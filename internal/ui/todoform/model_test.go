package todoform

import (
	"errors"
	"testing"

	"github.com/nhle/geotodo/internal/model"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng string
		wantNil  bool
		wantErr  bool
	}{
		{name: "both empty", wantNil: true},
		{name: "both set", lat: "-23.55", lng: "-46.63"},
		{name: "latitude only", lat: "1", wantErr: true},
		{name: "not a number", lat: "north", lng: "1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &formBindings{latitude: tt.lat, longitude: tt.lng, address: " Av. Paulista "}
			loc, err := fb.location()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (loc == nil) != tt.wantNil {
				t.Fatalf("loc = %+v, wantNil %v", loc, tt.wantNil)
			}
			if loc != nil && loc.Address != "Av. Paulista" {
				t.Errorf("address = %q", loc.Address)
			}
		})
	}
}

func TestPatch_ClearsMissingLocation(t *testing.T) {
	fb := &formBindings{title: " Fix bug ", status: model.StatusDone, priority: model.PriorityHigh}

	patch := fb.patch(nil)

	if !patch.ClearLocation {
		t.Error("expected ClearLocation when no coordinates are entered")
	}
	if patch.Title == nil || *patch.Title != "Fix bug" {
		t.Errorf("title = %v", patch.Title)
	}
	if patch.Status == nil || *patch.Status != model.StatusDone {
		t.Errorf("status = %v", patch.Status)
	}
}

func TestValidators(t *testing.T) {
	if err := validateTitle("  "); err == nil {
		t.Error("blank title accepted")
	}
	if err := validateTitle("Buy milk"); err != nil {
		t.Errorf("valid title rejected: %v", err)
	}
	if err := validateOptionalDate(""); err != nil {
		t.Errorf("empty date rejected: %v", err)
	}
	if err := validateOptionalDate("2024-13-01"); err == nil {
		t.Error("invalid date accepted")
	}
	if err := validateCoord(-90, 90)("91"); err == nil {
		t.Error("out of range latitude accepted")
	}
	if err := validateCoord(-90, 90)(""); err != nil {
		t.Errorf("empty coordinate rejected: %v", err)
	}
}

func TestStartEdit_LoadsBindings(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(model.Todo{
		ID:       "3",
		Title:    "Visit office",
		Status:   model.StatusInProgress,
		Priority: model.PriorityLow,
		Location: &model.Location{Latitude: -23.5505, Longitude: -46.6333},
	})

	if m.fb.title != "Visit office" || m.fb.status != model.StatusInProgress {
		t.Errorf("bindings = %+v", m.fb)
	}
	if m.fb.latitude != "-23.5505" || m.fb.longitude != "-46.6333" {
		t.Errorf("coordinates = %q, %q", m.fb.latitude, m.fb.longitude)
	}
	if !m.editMode || m.editID != "3" {
		t.Errorf("editMode=%v editID=%q", m.editMode, m.editID)
	}
}

func TestHandleSubmit_InvalidKeepsForm(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.latitude = "1"

	m, _ = m.handleSubmit()

	if !errors.Is(m.Err(), errPartialLocation) {
		t.Errorf("err = %v, want partial location", m.Err())
	}
	if m.form == nil {
		t.Error("form should be rebuilt after a failed submit")
	}
}

func TestHandleSubmit_Create(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.title = "Buy milk"

	m, cmd := m.handleSubmit()
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	msg, ok := cmd().(TodoCreatedMsg)
	if !ok {
		t.Fatalf("expected TodoCreatedMsg")
	}
	if msg.Fields.Title != "Buy milk" || msg.Fields.Status != model.StatusPending {
		t.Errorf("fields = %+v", msg.Fields)
	}
}
