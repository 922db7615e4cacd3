// ABOUTME: Flickr provider adapter mapping public photo payloads to observations
// ABOUTME: Only photos with a caption-embedded partial item are imported

package providers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"natureshare-pipeline/core/domain"
	"natureshare-pipeline/core/interfaces"
	"natureshare-pipeline/core/reconcile"
	"natureshare-pipeline/pkg/utils/html"
	"natureshare-pipeline/pkg/utils/timeutil"
)

// Flickr fetches a user's public photos from a flickr proxy endpoint and
// maps them to observations. Photos without a caption partial are ignored;
// a flickr import never creates an item the user did not annotate.
type Flickr struct {
	deps     interfaces.Dependencies
	endpoint string
	captions interfaces.CaptionParser
}

// NewFlickr creates the flickr adapter.
func NewFlickr(deps interfaces.Dependencies, endpoint string) *Flickr {
	return &Flickr{
		deps:     deps,
		endpoint: endpoint,
		captions: reconcile.NewService(deps),
	}
}

// Name implements interfaces.Provider.
func (f *Flickr) Name() string { return "flickr" }

type flickrPayload struct {
	Photos struct {
		Photo []flickrPhoto `json:"photo"`
	} `json:"photos"`
}

type flickrPhoto struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description struct {
		Content string `json:"_content"`
	} `json:"description"`
	MediaStatus      string      `json:"media_status"`
	Media            string      `json:"media"`
	DateUpload       json.Number `json:"dateupload"`
	LastUpdate       json.Number `json:"lastupdate"`
	DateTaken        string      `json:"datetaken"`
	DateTakenUnknown string      `json:"datetakenunknown"`
	Latitude         json.Number `json:"latitude"`
	Longitude        json.Number `json:"longitude"`
	URLMedium        string      `json:"url_m"`
	URLOriginal      string      `json:"url_o"`
	WidthOriginal    json.Number `json:"width_o"`
	HeightOriginal   json.Number `json:"height_o"`
	Tags             string      `json:"tags"`
}

// Fetch implements interfaces.Provider.
func (f *Flickr) Fetch(ctx context.Context, username string) ([]domain.Observation, error) {
	var payload flickrPayload
	url := f.endpoint + "?username=" + username
	if err := fetchJSON(ctx, f.deps.HTTPClient, url, &payload); err != nil {
		return nil, err
	}

	var observations []domain.Observation
	for _, photo := range payload.Photos.Photo {
		if photo.MediaStatus != "" && photo.MediaStatus != "ready" {
			continue
		}

		partial := f.captions.ParseCaption(html.StripTags(photo.Description.Content))
		if partial == nil {
			continue
		}

		obs := f.mapPhoto(photo, *partial)
		observations = append(observations, obs)
	}
	return observations, nil
}

// mapPhoto builds one observation from a flickr photo record.
func (f *Flickr) mapPhoto(photo flickrPhoto, partial domain.Item) domain.Observation {
	createdAt := unixToISO(photo.DateUpload)
	updatedAt := unixToISO(photo.LastUpdate)

	var dateTaken string
	if photo.DateTakenUnknown == "0" && photo.DateTaken != "" {
		if t := timeutil.ParseFlexibleTime(photo.DateTaken); !t.IsZero() {
			dateTaken = t.Format(time.RFC3339)
		}
	}

	media := domain.Media{
		Source:       "flickr",
		ID:           photo.ID,
		Href:         "https://www.flickr.com/photos/" + photo.Owner + "/" + photo.ID,
		Datetime:     dateTaken,
		Width:        numberToInt(photo.WidthOriginal),
		Height:       numberToInt(photo.HeightOriginal),
		ThumbnailURL: photo.URLMedium,
		OriginalURL:  photo.URLOriginal,
	}

	native := domain.NativeMetadata{
		Datetime:  dateTaken,
		Tags:      strings.Fields(photo.Tags),
		Photos:    []domain.Media{media},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if loc := reconcile.GetValidLocation(photo.Latitude.String(), photo.Longitude.String()); loc != nil {
		native.Latitude = &loc.Latitude
		native.Longitude = &loc.Longitude
	}

	// Flickr videos reuse the photo record; the original file is not
	// downloadable so the video media drops original_url
	if photo.Media == "video" {
		video := media
		video.OriginalURL = ""
		native.Videos = []domain.Media{video}
	}

	return domain.Observation{
		Slug:         photo.ID,
		Year:         timeutil.Year(createdAt),
		Partial:      partial,
		Native:       native,
		RequireMedia: true,
	}
}

func unixToISO(n json.Number) string {
	sec, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil || sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

func numberToInt(n json.Number) int {
	v, err := strconv.Atoi(n.String())
	if err != nil {
		return 0
	}
	return v
}
