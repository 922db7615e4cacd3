// ABOUTME: Tests for coordinate parsing and validation
// ABOUTME: Zero and malformed coordinates must never produce a location

package reconcile

import "testing"

func TestGetValidLocationParsesAndRounds(t *testing.T) {
	loc := GetValidLocation("-27.123456789", "153.987654321")
	if loc == nil {
		t.Fatal("expected a location")
	}
	if loc.Latitude != -27.123457 || loc.Longitude != 153.987654 {
		t.Errorf("expected rounded coordinates, got (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestGetValidLocationRejectsZero(t *testing.T) {
	if loc := GetValidLocation("0", "153.4"); loc != nil {
		t.Errorf("zero latitude should yield no location, got %+v", loc)
	}
	if loc := GetValidLocation("-27.5", "0"); loc != nil {
		t.Errorf("zero longitude should yield no location, got %+v", loc)
	}
	if loc := GetValidLocation("0", "0"); loc != nil {
		t.Errorf("null island should yield no location, got %+v", loc)
	}
}

func TestGetValidLocationRejectsMalformed(t *testing.T) {
	if loc := GetValidLocation("", ""); loc != nil {
		t.Errorf("empty strings should yield no location, got %+v", loc)
	}
	if loc := GetValidLocation("south", "east"); loc != nil {
		t.Errorf("non-numeric strings should yield no location, got %+v", loc)
	}
}
