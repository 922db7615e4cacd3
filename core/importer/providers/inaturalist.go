// ABOUTME: iNaturalist provider adapter over the public observations API
// ABOUTME: Observations already mirrored from this pipeline are skipped via the ofvs marker

package providers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/core/reconcile"
	"natureshare-pipeline/pkg/utils/timeutil"
)

const inaturalistStaticHost = "https://static.inaturalist.org"

// mirrorFieldName marks observations that were pushed to iNaturalist from
// this pipeline; importing them back would duplicate items.
const mirrorFieldName = "NatureShare URL"

var tagCharsRe = regexp.MustCompile(`[^a-z0-9-_.]`)

// INaturalist fetches a user's observations from the iNaturalist API and
// maps them to observations. Unlike the photo providers an iNaturalist
// record is importable on identifications alone.
type INaturalist struct {
	deps     interfaces.Dependencies
	endpoint string
}

// NewINaturalist creates the iNaturalist adapter.
func NewINaturalist(deps interfaces.Dependencies, endpoint string) *INaturalist {
	return &INaturalist{deps: deps, endpoint: endpoint}
}

// Name implements interfaces.Provider.
func (n *INaturalist) Name() string { return "inaturalist" }

type inatPayload struct {
	Results []inatObservation `json:"results"`
	PerPage int               `json:"per_page"`
}

type inatObservation struct {
	ID              int64  `json:"id"`
	URI             string `json:"uri"`
	TimeObservedAt  string `json:"time_observed_at"`
	PrivateLocation string `json:"private_location"`
	Location        string `json:"location"`
	PlaceGuess      string `json:"place_guess"`
	Description     string `json:"description"`
	Tags            []string `json:"tags"`
	Identifications []struct {
		Taxon struct {
			Name                string `json:"name"`
			PreferredCommonName string `json:"preferred_common_name"`
		} `json:"taxon"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"identifications"`
	Photos []struct {
		ID                 int64 `json:"id"`
		OriginalDimensions struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"original_dimensions"`
		LicenseCode string `json:"license_code"`
	} `json:"photos"`
	Ofvs []struct {
		Name string `json:"name"`
	} `json:"ofvs"`
	LicenseCode string `json:"license_code"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Fetch implements interfaces.Provider. Pages through the API using the
// id_above cursor until a short page arrives.
func (n *INaturalist) Fetch(ctx context.Context, username string) ([]domain.Observation, error) {
	var observations []domain.Observation

	var idAbove int64
	for {
		query := url.Values{
			"user_login": {username},
			"order_by":   {"id"},
			"order":      {"asc"},
		}
		if idAbove != 0 {
			query.Set("id_above", fmt.Sprintf("%d", idAbove))
		}

		var payload inatPayload
		u := n.endpoint + "/v1/observations?" + query.Encode()
		if err := fetchJSON(ctx, n.deps.HTTPClient, u, &payload); err != nil {
			return nil, err
		}
		if len(payload.Results) == 0 {
			break
		}

		for _, result := range payload.Results {
			if result.mirrored() {
				continue
			}
			observations = append(observations, n.mapObservation(result))
		}

		idAbove = payload.Results[len(payload.Results)-1].ID
		if payload.PerPage == 0 || len(payload.Results) < payload.PerPage {
			break
		}
	}
	return observations, nil
}

func (o *inatObservation) mirrored() bool {
	for _, f := range o.Ofvs {
		if f.Name == mirrorFieldName {
			return true
		}
	}
	return false
}

// mapObservation builds one observation from an API record. Identifications,
// description and place name are explicit user content and ride in the
// partial; times, location and photos are native metadata.
func (n *INaturalist) mapObservation(o inatObservation) domain.Observation {
	partial := domain.Item{
		LocationName: o.PlaceGuess,
		Description:  o.Description,
		License:      normalizeLicense(o.LicenseCode),
		Source:       []domain.SourceRef{{Name: "iNaturalist", Href: o.URI}},
	}
	for _, ident := range o.Identifications {
		partial.ID = append(partial.ID, domain.Identification{
			Name:   ident.Taxon.Name,
			Common: ident.Taxon.PreferredCommonName,
			By:     []string{ident.User.Login},
		})
	}

	native := domain.NativeMetadata{
		Datetime:  o.TimeObservedAt,
		Tags:      normalizeTags(o.Tags),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	location := o.PrivateLocation
	if location == "" {
		location = o.Location
	}
	if parts := strings.SplitN(location, ",", 2); len(parts) == 2 {
		if loc := reconcile.GetValidLocation(parts[0], parts[1]); loc != nil {
			native.Latitude = &loc.Latitude
			native.Longitude = &loc.Longitude
		}
	}

	for _, photo := range o.Photos {
		native.Photos = append(native.Photos, domain.Media{
			Source:       "iNaturalist",
			ID:           fmt.Sprintf("%d", photo.ID),
			Width:        photo.OriginalDimensions.Width,
			Height:       photo.OriginalDimensions.Height,
			ThumbnailURL: fmt.Sprintf("%s/photos/%d/large.jpg", inaturalistStaticHost, photo.ID),
			OriginalURL:  fmt.Sprintf("%s/photos/%d/original.jpg", inaturalistStaticHost, photo.ID),
			License:      normalizeLicense(photo.LicenseCode),
		})
	}

	return domain.Observation{
		Slug:    fmt.Sprintf("%d", o.ID),
		Year:    timeutil.Year(o.CreatedAt),
		Partial: partial,
		Native:  native,
	}
}

// normalizeLicense maps API license codes ("cc-by-nc") to the display form
// used on items ("CC BY NC").
func normalizeLicense(code string) string {
	if code == "" {
		return ""
	}
	return strings.ReplaceAll(strings.ToUpper(code), "-", " ")
}

// normalizeTags lowercases and strips characters outside the tag alphabet.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = tagCharsRe.ReplaceAllString(strings.ToLower(t), "")
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
