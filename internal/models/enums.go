package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/spotx/internal/shared"
)

// ObjectType is the "type" discriminator carried by every catalog object.
type ObjectType string

const (
	ObjectTypeAlbum    ObjectType = "album"
	ObjectTypeArtist   ObjectType = "artist"
	ObjectTypeTrack    ObjectType = "track"
	ObjectTypeEpisode  ObjectType = "episode"
	ObjectTypeShow     ObjectType = "show"
	ObjectTypePlaylist ObjectType = "playlist"
	ObjectTypeUser     ObjectType = "user"
)

// SearchableTypes lists the object types accepted by the search endpoint, in their canonical order.
var SearchableTypes = []ObjectType{
	ObjectTypeAlbum, ObjectTypeArtist, ObjectTypeTrack, ObjectTypeShow, ObjectTypeEpisode,
}

// ParseObjectType resolves a case-insensitive type name.
func ParseObjectType(s string) (ObjectType, error) {
	switch t := ObjectType(strings.ToLower(strings.TrimSpace(s))); t {
	case ObjectTypeAlbum, ObjectTypeArtist, ObjectTypeTrack, ObjectTypeEpisode,
		ObjectTypeShow, ObjectTypePlaylist, ObjectTypeUser:
		return t, nil
	default:
		return "", fmt.Errorf("%w: object type %q", shared.ErrUnrecognizedValue, s)
	}
}

func (t ObjectType) String() string { return string(t) }

// IDType selects what kind of entity the follow endpoints act on.
type IDType string

const (
	IDTypeArtist IDType = "artist"
	IDTypeUser   IDType = "user"
)

func (t IDType) String() string { return string(t) }

// AlbumType classifies an album release.
type AlbumType string

const (
	AlbumTypeAlbum       AlbumType = "album"
	AlbumTypeSingle      AlbumType = "single"
	AlbumTypeCompilation AlbumType = "compilation"
)

// ParseAlbumType normalizes the upstream value, which is documented lower case but sometimes arrives upper case.
func ParseAlbumType(s string) AlbumType {
	return AlbumType(strings.ToLower(s))
}

func (t AlbumType) String() string { return string(t) }

// AlbumGroup is the relationship between an artist and an album in the artist albums listing.
type AlbumGroup string

const (
	AlbumGroupAlbum       AlbumGroup = "album"
	AlbumGroupSingle      AlbumGroup = "single"
	AlbumGroupCompilation AlbumGroup = "compilation"
	AlbumGroupAppearsOn   AlbumGroup = "appears_on"
)

// IncludeGroups lists the values accepted by the include_groups filter.
var IncludeGroups = []AlbumGroup{
	AlbumGroupAlbum, AlbumGroupSingle, AlbumGroupAppearsOn, AlbumGroupCompilation,
}

func (g AlbumGroup) String() string { return string(g) }

// ReleaseDatePrecision tells which prefix of a release date string is meaningful.
type ReleaseDatePrecision string

const (
	PrecisionYear  ReleaseDatePrecision = "year"
	PrecisionMonth ReleaseDatePrecision = "month"
	PrecisionDay   ReleaseDatePrecision = "day"
)

// TimeRange is the affinity window for the top items endpoints.
type TimeRange string

const (
	TimeRangeShort  TimeRange = "short_term"
	TimeRangeMedium TimeRange = "medium_term"
	TimeRangeLong   TimeRange = "long_term"
)

// ParseTimeRange accepts both the wire names and the short forms "short", "medium" and "long".
func ParseTimeRange(s string) (TimeRange, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "short", string(TimeRangeShort):
		return TimeRangeShort, nil
	case "medium", string(TimeRangeMedium):
		return TimeRangeMedium, nil
	case "long", string(TimeRangeLong):
		return TimeRangeLong, nil
	default:
		return "", fmt.Errorf("%w: time range %q", shared.ErrUnrecognizedValue, s)
	}
}

// Mode is the modality of a track, derived from its melodic content.
type Mode int

const (
	ModeMinor Mode = 0
	ModeMajor Mode = 1
)

func (m Mode) String() string {
	if m == ModeMajor {
		return "major"
	}
	return "minor"
}

// Key is a pitch class in standard notation. -1 means no key was detected.
type Key int

const KeyUnknown Key = -1

var pitchClasses = [...]string{"C", "C♯/D♭", "D", "D♯/E♭", "E", "F", "F♯/G♭", "G", "G♯/A♭", "A", "A♯/B♭", "B"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(pitchClasses) {
		return "unknown"
	}
	return pitchClasses[k]
}
