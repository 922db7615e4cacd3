// ABOUTME: Fixed total-order sort chain for feed items
// ABOUTME: Stable sort; equal keys preserve input order

package feed

import (
	"sort"

	"natureshare-pipeline/core/domain"
)

// SortFeedItems orders items in place by the fixed tie-break chain:
// featured ascending, date_published descending, date_modified descending,
// then itemCount, imageCount, videoCount and audioCount descending. Dates are
// compared as ISO-8601 strings, which sorts chronologically for uniformly
// formatted timestamps and deterministically otherwise.
func SortFeedItems(items []domain.FeedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]

		if af, bf := a.Featured(), b.Featured(); af != bf {
			return !af
		}
		if a.DatePublished != b.DatePublished {
			return a.DatePublished > b.DatePublished
		}
		if a.DateModified != b.DateModified {
			return a.DateModified > b.DateModified
		}

		ai, aimg, av, aa := a.MetaCounts()
		bi, bimg, bv, ba := b.MetaCounts()
		if ai != bi {
			return ai > bi
		}
		if aimg != bimg {
			return aimg > bimg
		}
		if av != bv {
			return av > bv
		}
		if aa != ba {
			return aa > ba
		}
		return false
	})
}
