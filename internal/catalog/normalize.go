package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coordinates locates a property on the map view.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Property is the normalized catalog record served to consumers.
type Property struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Price        float64      `json:"price"`
	Location     string       `json:"location"`
	ImageURL     string       `json:"image_url"`
	Images       []string     `json:"images,omitempty"`
	Bedrooms     int          `json:"bedrooms"`
	Bathrooms    int          `json:"bathrooms"`
	AreaSqm      float64      `json:"area_sqm"`
	PropertyType string       `json:"property_type"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	Badges       []string     `json:"badges,omitempty"`
	Featured     bool         `json:"featured"`
}

// rawProperty accepts both the legacy flat schema and the newer one.
// Field-name variants (area vs area_sqm, propertyType vs property_type)
// are resolved during normalization; ids may arrive as numbers.
type rawProperty struct {
	ID           json.RawMessage `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        float64         `json:"price"`
	Location     string          `json:"location"`
	ImageURL     string          `json:"image_url"`
	Image        string          `json:"image"`
	Images       []string        `json:"images"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	AreaSqm      float64         `json:"area_sqm"`
	Area         float64         `json:"area"`
	PropertyType string          `json:"property_type"`
	PropertyTypeCamel string     `json:"propertyType"`
	Coordinates  *Coordinates    `json:"coordinates"`
	Badges       []string        `json:"badges"`
	Featured     bool            `json:"featured"`
}

func (r rawProperty) normalize() Property {
	p := Property{
		ID:          normalizeID(r.ID),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Price:       r.Price,
		Location:    strings.TrimSpace(r.Location),
		ImageURL:    r.ImageURL,
		Images:      r.Images,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		AreaSqm:     r.AreaSqm,
		PropertyType: strings.ToLower(strings.TrimSpace(r.PropertyType)),
		Coordinates: r.Coordinates,
		Badges:      r.Badges,
		Featured:    r.Featured,
	}
	if p.AreaSqm == 0 {
		p.AreaSqm = r.Area
	}
	if p.PropertyType == "" {
		p.PropertyType = strings.ToLower(strings.TrimSpace(r.PropertyTypeCamel))
	}
	if p.ImageURL == "" {
		p.ImageURL = r.Image
	}
	if p.ImageURL == "" && len(p.Images) > 0 {
		p.ImageURL = p.Images[0]
	}
	return p
}

func normalizeID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber.String()
	}
	return strings.Trim(string(raw), `"`)
}

// parseProperties accepts either a bare JSON array or a document with a
// top-level "properties" array.
func parseProperties(doc []byte) ([]Property, error) {
	var raws []rawProperty
	if err := json.Unmarshal(doc, &raws); err != nil {
		var wrapper struct {
			Properties []rawProperty `json:"properties"`
		}
		if werr := json.Unmarshal(doc, &wrapper); werr != nil {
			return nil, err
		}
		raws = wrapper.Properties
	}

	properties := make([]Property, 0, len(raws))
	for i, raw := range raws {
		p := raw.normalize()
		if p.ID == "" {
			p.ID = strconv.Itoa(i + 1)
		}
		properties = append(properties, p)
	}
	return properties, nil
}
