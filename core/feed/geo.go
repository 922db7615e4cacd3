// ABOUTME: GeoJSON layer derived from located feed items
// ABOUTME: One point feature per item with coordinates; unlocated items are left out

package feed

import (
	geojson "github.com/paulmach/go.geojson"

	"natureshare-pipeline/core/domain"
)

// BuildGeoJSON projects located items into a point feature collection. The
// feature properties carry just enough to render a map popup.
func BuildGeoJSON(items []domain.FeedItem) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range items {
		coords := items[i].Coordinates()
		if coords == nil {
			continue
		}

		f := geojson.NewPointFeature([]float64{coords[0], coords[1]})
		f.SetProperty("id", items[i].ID)
		if items[i].URL != "" {
			f.SetProperty("url", items[i].URL)
		}
		if items[i].Title != "" {
			f.SetProperty("title", items[i].Title)
		}
		if items[i].DatePublished != "" {
			f.SetProperty("date", items[i].DatePublished)
		}
		if items[i].Image != "" {
			f.SetProperty("image", items[i].Image)
		}
		fc.AddFeature(f)
	}
	return fc
}
