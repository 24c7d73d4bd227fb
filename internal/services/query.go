package services

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/samber/lo"
)

// RequestOption sets an optional query parameter. Options an endpoint does not document are ignored by it.
type RequestOption func(*requestOptions)

type requestOptions struct {
	limit                *int
	offset               *int
	market               string
	country              string
	locale               string
	after                string
	fields               string
	timestamp            time.Time
	timeRange            models.TimeRange
	additionalTypes      []models.ObjectType
	includeGroups        []models.AlbumGroup
	includeExternalAudio bool
	attributes           map[string]float64
}

// Limit is the maximum number of items to return.
func Limit(n int) RequestOption {
	return func(o *requestOptions) { o.limit = &n }
}

// Offset is the index of the first item to return.
func Offset(n int) RequestOption {
	return func(o *requestOptions) { o.offset = &n }
}

// Market is an ISO 3166-1 alpha-2 country code, or "from_token" for the user's country.
func Market(code string) RequestOption {
	return func(o *requestOptions) { o.market = code }
}

// Country is an ISO 3166-1 alpha-2 country code used by browse endpoints.
func Country(code string) RequestOption {
	return func(o *requestOptions) { o.country = code }
}

// Locale is an ISO 639-1 language code and country code joined by an underscore, e.g. es_MX.
func Locale(locale string) RequestOption {
	return func(o *requestOptions) { o.locale = locale }
}

// After is the cursor for the followed artists listing.
func After(cursor string) RequestOption {
	return func(o *requestOptions) { o.after = cursor }
}

// Fields filters the playlist response, e.g. "items(track(name,href))".
func Fields(filter string) RequestOption {
	return func(o *requestOptions) { o.fields = filter }
}

// Timestamp is the user's local time for featured playlists.
func Timestamp(t time.Time) RequestOption {
	return func(o *requestOptions) { o.timestamp = t }
}

// WithTimeRange sets the affinity window for top items.
func WithTimeRange(r models.TimeRange) RequestOption {
	return func(o *requestOptions) { o.timeRange = r }
}

// AdditionalTypes lists item types besides track that a playlist response may contain.
func AdditionalTypes(types ...models.ObjectType) RequestOption {
	return func(o *requestOptions) { o.additionalTypes = types }
}

// IncludeGroups filters the artist albums listing.
func IncludeGroups(groups ...models.AlbumGroup) RequestOption {
	return func(o *requestOptions) { o.includeGroups = groups }
}

// IncludeExternalAudio marks externally hosted audio as playable in search results.
func IncludeExternalAudio() RequestOption {
	return func(o *requestOptions) { o.includeExternalAudio = true }
}

// TrackAttribute tunes recommendations. key is a min_, max_ or target_ prefix followed by an
// attribute name such as "energy" or "tempo".
func TrackAttribute(key string, value float64) RequestOption {
	return func(o *requestOptions) {
		if o.attributes == nil {
			o.attributes = make(map[string]float64)
		}
		o.attributes[key] = value
	}
}

func processOptions(opts ...RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// values builds the query. Empty strings and empty lists are omitted, lists are comma joined.
func (o requestOptions) values() url.Values {
	v := url.Values{}
	if o.limit != nil {
		v.Set("limit", strconv.Itoa(*o.limit))
	}
	if o.offset != nil {
		v.Set("offset", strconv.Itoa(*o.offset))
	}
	setString(v, "market", o.market)
	setString(v, "country", o.country)
	setString(v, "locale", o.locale)
	setString(v, "after", o.after)
	setString(v, "fields", o.fields)
	setString(v, "time_range", string(o.timeRange))
	if !o.timestamp.IsZero() {
		v.Set("timestamp", o.timestamp.Format("2006-01-02T15:04:05"))
	}
	setList(v, "additional_types", o.additionalTypes)
	setList(v, "include_groups", o.includeGroups)
	if o.includeExternalAudio {
		v.Set("include_external", "audio")
	}
	for key, value := range o.attributes {
		v.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return v
}

// validateLimit checks a supplied limit against the inclusive bounds. An absent limit uses the server default.
func (o requestOptions) validateLimit(floor, ceiling int) error {
	if o.limit == nil {
		return nil
	}
	return validateRange("limit", *o.limit, floor, ceiling)
}

func (o requestOptions) validateOffset(ceiling int) error {
	if o.offset == nil {
		return nil
	}
	return validateRange("offset", *o.offset, 0, ceiling)
}

// validatePage applies the common paging bounds.
func (o requestOptions) validatePage(maxLimit int) error {
	if err := o.validateLimit(1, maxLimit); err != nil {
		return err
	}
	return o.validateOffset(math.MaxInt32)
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setList[T ~string](v url.Values, key string, items []T) {
	items = lo.Filter(items, func(s T, _ int) bool { return s != "" })
	if len(items) == 0 {
		return
	}
	v.Set(key, strings.Join(lo.Map(items, func(s T, _ int) string { return string(s) }), ","))
}

// query keeps only the parameters named by keys, the ones the endpoint documents.
func (o requestOptions) query(keys ...string) url.Values {
	all := o.values()
	v := url.Values{}
	for _, k := range keys {
		if x, ok := all[k]; ok {
			v[k] = x
		}
	}
	return v
}
