package syndication

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/immoflow/backend/internal/domain/listing"
)

// IDX 3.01 feed constants. Property and offer types are fixed for now;
// the listing model does not carry them yet.
const (
	feedVersion      = "3.01"
	feedPropertyType = "apartment"
	feedOfferType    = "sale"
	feedCurrency     = "CHF"
	feedSurfaceUnit  = "sqm"
	feedDescLang     = "fr"
)

// ImageURLResolver maps a stored image reference to a publicly reachable
// URL. An empty return value means the image is skipped; a listing still
// exports without a broken media reference.
type ImageURLResolver interface {
	PublicURL(storagePath string) string
}

type feedDocument struct {
	XMLName      xml.Name         `xml:"root"`
	Version      string           `xml:"version,attr"`
	Transactions feedTransactions `xml:"transactions"`
}

type feedTransactions struct {
	Items []feedTransaction `xml:"transaction"`
}

type feedTransaction struct {
	Reference    string          `xml:"reference,attr"`
	PropertyType string          `xml:"property_type"`
	OfferType    string          `xml:"offer_type"`
	Price        feedPrice       `xml:"price"`
	Address      feedAddress     `xml:"address"`
	Features     feedFeatures    `xml:"features"`
	Description  feedDescription `xml:"description"`
	Media        feedMedia       `xml:"media"`
}

type feedPrice struct {
	Currency string `xml:"currency,attr"`
	Value    string `xml:",chardata"`
}

type feedAddress struct {
	Street string `xml:"street"`
	Zip    string `xml:"zip"`
	City   string `xml:"city"`
	Canton string `xml:"canton"`
}

type feedFeatures struct {
	Rooms         string      `xml:"rooms"`
	SurfaceLiving feedSurface `xml:"surface_living"`
}

type feedSurface struct {
	Unit  string `xml:"unit,attr"`
	Value string `xml:",chardata"`
}

type feedDescription struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

type feedMedia struct {
	Images []feedImage `xml:"image"`
}

type feedImage struct {
	URL string `xml:"url,attr"`
}

// BuildFeed serializes the given properties into an IDX-compatible XML
// document. The output is deterministic: it depends only on the input
// order and field values. Every element of the schema is emitted for
// every transaction; missing optional fields become empty text content.
// Free-text fields are escaped by the XML encoder.
func BuildFeed(properties []listing.Property, resolver ImageURLResolver) (string, error) {
	doc := feedDocument{
		Version:      feedVersion,
		Transactions: feedTransactions{Items: make([]feedTransaction, 0, len(properties))},
	}

	for i := range properties {
		doc.Transactions.Items = append(doc.Transactions.Items, buildTransaction(&properties[i], resolver))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize feed: %w", err)
	}

	return xml.Header + string(out) + "\n", nil
}

func buildTransaction(p *listing.Property, resolver ImageURLResolver) feedTransaction {
	tx := feedTransaction{
		Reference:    p.Reference,
		PropertyType: feedPropertyType,
		OfferType:    feedOfferType,
		Price: feedPrice{
			Currency: feedCurrency,
			Value:    p.PriceCHF.String(),
		},
		Address: feedAddress{
			Street: p.Street,
			Zip:    p.ZipCode,
			City:   p.City,
			Canton: p.Canton,
		},
		Features: feedFeatures{
			Rooms: formatFeedNumber(p.Rooms),
			SurfaceLiving: feedSurface{
				Unit:  feedSurfaceUnit,
				Value: formatFeedNumber(p.SurfaceLiving),
			},
		},
		Description: feedDescription{
			Lang:  feedDescLang,
			Value: p.DescriptionFR,
		},
		Media: feedMedia{Images: make([]feedImage, 0, len(p.Images))},
	}

	for _, img := range p.SortedImages() {
		url := resolver.PublicURL(img.StoragePath)
		if url == "" {
			continue
		}
		tx.Media.Images = append(tx.Media.Images, feedImage{URL: url})
	}

	return tx
}

func formatFeedNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
