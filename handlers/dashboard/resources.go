package handlers

import (
	"context"
	"strconv"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/pkg/orderwizard"
	"github.com/zaidalsharkasi/NFC-frontend-sub000/services"
)

// Admin ekranlarında yönetilen kaynakların tanımları.

var ProductResource = Resource{
	Slug: "products", Title: "Products", Singular: "Product", SortBy: "created_at",
	Columns: []Column{
		{Key: "image", Label: "Image", Image: true},
		{Key: "name", Label: "Name"},
		{Key: "price", Label: "Price", Money: true},
		{Key: "is_active", Label: "Active"},
	},
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: FieldText, Required: true},
		{Name: "description", Label: "Description", Kind: FieldTextarea},
		{Name: "price", Label: "Price", Kind: FieldNumber, Required: true},
		{Name: "color", Label: "Color", Kind: FieldText},
		{Name: "image", Label: "Image", Kind: FieldFile, Help: "PNG or JPG, up to 10 MB."},
		{Name: "is_active", Label: "Visible in store", Kind: FieldCheckbox},
	},
	Deletable: true,
}

var AddonResource = Resource{
	Slug: "addons", Title: "Add-ons", Singular: "Add-on", SortBy: "created_at",
	Columns: []Column{
		{Key: "title", Label: "Title"},
		{Key: "price", Label: "Price", Money: true},
		{Key: "input_type", Label: "Input"},
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: FieldText, Required: true},
		{Name: "description", Label: "Description", Kind: FieldTextarea},
		{Name: "price", Label: "Price", Kind: FieldNumber, Required: true},
		{Name: "input_type", Label: "Input type", Kind: FieldSelect, Required: true, Options: inputKindOptions()},
		{Name: "options", Label: "Options", Kind: FieldText, Help: "Comma separated, for radio and select inputs."},
		{Name: "image", Label: "Image", Kind: FieldFile},
	},
	Deletable: true,
}

var CountryResource = Resource{
	Slug: "countries", Title: "Countries", Singular: "Country", SortBy: "name",
	Columns: []Column{{Key: "name", Label: "Name"}, {Key: "code", Label: "Code"}},
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: FieldText, Required: true},
		{Name: "code", Label: "Code", Kind: FieldText},
	},
	Deletable: true,
}

var TestimonialResource = Resource{
	Slug: "testimonials", Title: "Testimonials", Singular: "Testimonial", SortBy: "created_at",
	Columns: []Column{
		{Key: "image", Label: "Photo", Image: true},
		{Key: "name", Label: "Name"},
		{Key: "rating", Label: "Rating"},
	},
	Fields: []Field{
		{Name: "name", Label: "Name", Kind: FieldText, Required: true},
		{Name: "position", Label: "Position", Kind: FieldText},
		{Name: "review", Label: "Review", Kind: FieldTextarea, Required: true},
		{Name: "rating", Label: "Rating", Kind: FieldSelect, Required: true, Options: ratingOptions()},
		{Name: "image", Label: "Photo", Kind: FieldFile},
	},
	Deletable: true,
}

var HeaderImageResource = Resource{
	Slug: "header-images", Title: "Header Images", Singular: "Header image", SortBy: "created_at",
	Columns: []Column{
		{Key: "image", Label: "Image", Image: true},
		{Key: "title", Label: "Title"},
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: FieldText},
		{Name: "subtitle", Label: "Subtitle", Kind: FieldText},
		{Name: "image", Label: "Image", Kind: FieldFile, Required: true},
	},
	Deletable: true,
}

var SocialMediaResource = Resource{
	Slug: "social-media", Title: "Social Links", Singular: "Social link", SortBy: "platform",
	Columns: []Column{{Key: "platform", Label: "Platform"}, {Key: "url", Label: "URL"}},
	Fields: []Field{
		{Name: "platform", Label: "Platform", Kind: FieldText, Required: true},
		{Name: "url", Label: "URL", Kind: FieldURL, Required: true},
		{Name: "icon", Label: "Icon", Kind: FieldText},
	},
	Deletable: true,
}

var SubscriberResource = Resource{
	Slug: "subscribers", Title: "Subscribers", Singular: "Subscriber", SortBy: "created_at",
	Columns:   []Column{{Key: "email", Label: "Email"}, {Key: "created_at", Label: "Subscribed"}},
	Deletable: true,
}

var MessageResource = Resource{
	Slug: "messages", Title: "Messages", Singular: "Message", SortBy: "created_at",
	Columns: []Column{
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
		{Key: "subject", Label: "Subject"},
		{Key: "message", Label: "Message"},
		{Key: "created_at", Label: "Received"},
	},
	Deletable: true,
}

// CityResource şehir formu ülke seçimini katalogdan okur.
func CityResource(catalog services.ICatalogService) Resource {
	return Resource{
		Slug: "cities", Title: "Cities", Singular: "City", SortBy: "name",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "country_id", Label: "Country"},
			{Key: "delivery_fee", Label: "Delivery fee", Money: true},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "country_id", Label: "Country", Kind: FieldSelect, Required: true, Lookup: countryOptions(catalog)},
			{Name: "delivery_fee", Label: "Delivery fee", Kind: FieldNumber, Required: true},
		},
		Deletable: true,
	}
}

func countryOptions(catalog services.ICatalogService) func(ctx context.Context) ([]Option, error) {
	return func(ctx context.Context) ([]Option, error) {
		countries, err := catalog.Countries(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]Option, 0, len(countries))
		for _, c := range countries {
			out = append(out, Option{Value: strconv.FormatUint(uint64(c.ID), 10), Label: c.Name})
		}
		return out, nil
	}
}

func inputKindOptions() []Option {
	kinds := []orderwizard.InputKind{
		orderwizard.InputText, orderwizard.InputNumber, orderwizard.InputRadio,
		orderwizard.InputSelect, orderwizard.InputImage,
	}
	out := make([]Option, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Option{Value: string(k), Label: string(k)})
	}
	return out
}

func ratingOptions() []Option {
	out := make([]Option, 0, 5)
	for i := 5; i >= 1; i-- {
		v := strconv.Itoa(i)
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}
