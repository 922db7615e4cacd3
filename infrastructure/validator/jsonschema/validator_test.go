// ABOUTME: Tests for the embedded JSON Schema validator
// ABOUTME: Covers conforming documents and first-failure reporting per schema

package jsonschema

import (
	"testing"

	"natureshare-pipeline/core/domain"
	coreerrors "natureshare-pipeline/core/errors"
	"natureshare-pipeline/core/interfaces"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator returned error: %v", err)
	}
	return v
}

func fptr(v float64) *float64 { return &v }

func TestValidateItemConforms(t *testing.T) {
	v := newTestValidator(t)

	item := domain.Item{
		ID:        []domain.Identification{{Name: "Vulpes vulpes"}},
		Datetime:  "2021-03-03T19:30:00Z",
		Latitude:  fptr(-27.5),
		Longitude: fptr(153.02),
		Tags:      []string{"nocturnal", "source~flickr"},
		Photos: []domain.Media{
			{Source: "flickr", ID: "51001", ThumbnailURL: "https://example.org/t.jpg"},
		},
		CreatedAt: "2021-03-03T20:00:00Z",
		UpdatedAt: "2021-03-05T00:00:00Z",
	}

	if err := v.Validate(item, interfaces.SchemaItem); err != nil {
		t.Errorf("expected conforming item, got %v", err)
	}
}

func TestValidateItemMissingMediaID(t *testing.T) {
	v := newTestValidator(t)

	item := domain.Item{
		ID:     []domain.Identification{{Name: "Vulpes vulpes"}},
		Photos: []domain.Media{{Source: "flickr"}},
	}

	err := v.Validate(item, interfaces.SchemaItem)
	if !coreerrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateItemLatitudeRange(t *testing.T) {
	v := newTestValidator(t)

	item := domain.Item{
		ID:        []domain.Identification{{Name: "Vulpes vulpes"}},
		Latitude:  fptr(-127.5),
		Longitude: fptr(153.02),
	}

	if err := v.Validate(item, interfaces.SchemaItem); !coreerrors.IsValidation(err) {
		t.Fatalf("expected ValidationError for out-of-range latitude, got %v", err)
	}
}

func TestValidateCollectionConforms(t *testing.T) {
	v := newTestValidator(t)

	cfg := domain.Collection{
		Title: "Fox Watch",
		Identifications: []domain.CollectionIdentification{
			{Name: "Vulpes vulpes", Tags: []string{"fox"}},
		},
		Tags: []string{"night"},
	}

	if err := v.Validate(cfg, interfaces.SchemaCollection); err != nil {
		t.Errorf("expected conforming collection, got %v", err)
	}
}

func TestValidateProfileRejectsBadJoined(t *testing.T) {
	v := newTestValidator(t)

	profile := domain.Profile{Name: "Alice", Joined: "March 2019"}

	if err := v.Validate(profile, interfaces.SchemaProfile); !coreerrors.IsValidation(err) {
		t.Fatalf("joined must be a year, got %v", err)
	}

	profile.Joined = "2019"
	if err := v.Validate(profile, interfaces.SchemaProfile); err != nil {
		t.Errorf("expected conforming profile, got %v", err)
	}
}

func TestValidateFeedPage(t *testing.T) {
	v := newTestValidator(t)

	page := domain.Feed{
		Version: domain.JSONFeedVersion,
		Title:   "Items",
		Items: []domain.FeedItem{
			{ID: "https://files.example.org/alice/items/flickr/2021/51001.yaml"},
		},
		Meta: domain.FeedPageMeta{ItemCount: 1, PageNumber: 1, PageCount: 1},
	}

	if err := v.Validate(page, interfaces.SchemaFeed); err != nil {
		t.Errorf("expected conforming feed page, got %v", err)
	}

	page.Title = ""
	if err := v.Validate(page, interfaces.SchemaFeed); !coreerrors.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty title, got %v", err)
	}
}

func TestValidateReportsOffendingField(t *testing.T) {
	v := newTestValidator(t)

	page := domain.Feed{
		Version: domain.JSONFeedVersion,
		Title:   "Items",
		Meta:    domain.FeedPageMeta{ItemCount: -1, PageNumber: 1, PageCount: 1},
	}

	err := v.Validate(page, interfaces.SchemaFeed)
	var verr *coreerrors.ValidationError
	if !coreerrors.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	verr = err.(*coreerrors.ValidationError)
	if verr.Field == "" {
		t.Error("validation errors must carry the offending field")
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	v := newTestValidator(t)

	if err := v.Validate(struct{}{}, "species"); err == nil {
		t.Error("expected error for unknown schema name")
	}
}
