package catalog

// Photo is an image reference with its intrinsic size.
type Photo struct {
	Src    string `yaml:"src"`
	Alt    string `yaml:"alt"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Room is a bookable room type.
type Room struct {
	Item          `yaml:",inline"`
	Name          string   `yaml:"name"`
	Summary       string   `yaml:"summary"`
	Description   string   `yaml:"description"`
	PricePerNight int64    `yaml:"price_per_night"`
	Currency      string   `yaml:"currency"`
	Capacity      int      `yaml:"capacity"`
	SizeSqm       int      `yaml:"size_sqm"`
	Bed           string   `yaml:"bed"`
	Amenities     []string `yaml:"amenities"`
	Photos        []Photo  `yaml:"photos"`
}

// Cover returns the first photo or a zero Photo.
func (r Room) Cover() Photo {
	if len(r.Photos) == 0 {
		return Photo{}
	}
	return r.Photos[0]
}

// MediaKind distinguishes still images from videos.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// GalleryMedia is one image or video shown in the gallery.
type GalleryMedia struct {
	Item    `yaml:",inline"`
	Title   string    `yaml:"title"`
	Caption string    `yaml:"caption"`
	Kind    MediaKind `yaml:"kind"`
	Src     string    `yaml:"src"`
	Poster  string    `yaml:"poster"`
	Width   int       `yaml:"width"`
	Height  int       `yaml:"height"`
}

// IsVideo reports whether the media is a video.
func (g GalleryMedia) IsVideo() bool { return g.Kind == MediaVideo }

// MenuItem is a dish or drink on the restaurant menu.
type MenuItem struct {
	Item        `yaml:",inline"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       int64    `yaml:"price"`
	Currency    string   `yaml:"currency"`
	Dietary     []string `yaml:"dietary"`
	Photo       Photo    `yaml:"photo"`
}

// Treatment is a spa treatment or package.
type Treatment struct {
	Item            `yaml:",inline"`
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Price           int64  `yaml:"price"`
	Currency        string `yaml:"currency"`
	Photo           Photo  `yaml:"photo"`
}

// Service is a hotel service or facility.
type Service struct {
	Item        `yaml:",inline"`
	Name        string `yaml:"name"`
	Summary     string `yaml:"summary"`
	Description string `yaml:"description"`
	Hours       string `yaml:"hours"`
	Icon        string `yaml:"icon"`
	Photo       Photo  `yaml:"photo"`
}
