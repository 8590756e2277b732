package models

// ImageScale names the screen scale an artwork URL is registered for
type ImageScale string

const (
	ScreenScale1x ImageScale = "1x"
	ScreenScale2x ImageScale = "2x"
)

// AllScales lists the scales every item registers its artwork for
var AllScales = []ImageScale{ScreenScale1x, ScreenScale2x}

// AppListEntry is one element of the app list the main application stores
// in shared settings
type AppListEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	HostUUID string `json:"hostUUID"`
	HostName string `json:"hostName"`
}

// Action is what the shell opens when an item is selected or played
type Action struct {
	URL string `json:"url"`
}

// Item is a single tile on the shelf
type Item struct {
	Identifier    string                `json:"identifier"`
	Title         string                `json:"title,omitempty"`
	ImageURLs     map[ImageScale]string `json:"imageURLs"`
	PlayAction    *Action               `json:"playAction,omitempty"`
	DisplayAction *Action               `json:"displayAction,omitempty"`
}

// NewItem creates an item with no artwork and no actions
func NewItem(identifier string) *Item {
	return &Item{
		Identifier: identifier,
		ImageURLs:  make(map[ImageScale]string, len(AllScales)),
	}
}

// SetImageURL registers url for each of the given scales
func (i *Item) SetImageURL(url string, scales ...ImageScale) {
	for _, s := range scales {
		i.ImageURLs[s] = url
	}
}

// ImageURL returns the artwork registered for scale
func (i *Item) ImageURL(scale ImageScale) string {
	return i.ImageURLs[scale]
}

// Section is a titled group of items belonging to one host
type Section struct {
	Title string  `json:"title"`
	Items []*Item `json:"items"`
}

// Content is the sectioned collection handed back to the shell
type Content struct {
	Sections []*Section `json:"sections"`
}

// ItemCount returns the number of items across all sections
func (c *Content) ItemCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	return n
}
