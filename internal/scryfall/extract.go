package scryfall

import (
	"strconv"
	"strings"

	"deckbuilder/internal/collection"
)

// card is the subset of Scryfall's card object the pipeline extracts.
// Unknown fields in the response are ignored; missing optional fields
// resolve to empty strings, never an error.
type card struct {
	Name            string     `json:"name"`
	ManaCost        string     `json:"mana_cost"`
	TypeLine        string     `json:"type_line"`
	OracleText      string     `json:"oracle_text"`
	Power           string     `json:"power"`
	Toughness       string     `json:"toughness"`
	CMC             *float64   `json:"cmc"`
	Colors          []string   `json:"colors"`
	ColorIdentity   []string   `json:"color_identity"`
	Rarity          string     `json:"rarity"`
	Loyalty         string     `json:"loyalty"`
	SetName         string     `json:"set_name"`
	CollectorNumber string     `json:"collector_number"`
	ImageURIs       *imageURIs `json:"image_uris"`
	CardFaces       []cardFace `json:"card_faces"`
}

type cardFace struct {
	ImageURIs *imageURIs `json:"image_uris"`
}

type imageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
}

func (c card) attributes() collection.Attributes {
	return collection.Attributes{
		ManaCost:        c.ManaCost,
		TypeLine:        c.TypeLine,
		OracleText:      c.OracleText,
		Power:           c.Power,
		Toughness:       c.Toughness,
		CMC:             formatCMC(c.CMC),
		Colors:          strings.Join(c.Colors, ","),
		ColorIdentity:   strings.Join(c.ColorIdentity, ","),
		Rarity:          c.Rarity,
		Loyalty:         c.Loyalty,
		SetName:         c.SetName,
		CollectorNumber: c.CollectorNumber,
		ImageURIs:       c.imageList(),
	}
}

// imageList collects normal+small image URLs; double-faced cards carry their
// images on the faces instead of the top level.
func (c card) imageList() string {
	var urls []string
	appendURIs := func(u *imageURIs) {
		if u == nil {
			return
		}
		if u.Normal != "" {
			urls = append(urls, u.Normal)
		}
		if u.Small != "" {
			urls = append(urls, u.Small)
		}
	}

	if c.ImageURIs != nil {
		appendURIs(c.ImageURIs)
	} else {
		for _, face := range c.CardFaces {
			appendURIs(face.ImageURIs)
		}
	}
	return strings.Join(urls, ",")
}

func formatCMC(cmc *float64) string {
	if cmc == nil {
		return ""
	}
	return strconv.FormatFloat(*cmc, 'f', -1, 64)
}
