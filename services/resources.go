package services

// Backend kaynak yolları
const (
	ResourceProducts     = "products"
	ResourceAddons       = "addons"
	ResourceCountries    = "countries"
	ResourceCities       = "cities"
	ResourceTestimonials = "testimonials"
	ResourceHeaderImages = "header-images"
	ResourceSocialMedia  = "social-media"
	ResourceOrders       = "orders"
	ResourceBulkOrders   = "custom-orders"
	ResourceSubscribers  = "subscribers"
	ResourceMessages     = "messages"
)
