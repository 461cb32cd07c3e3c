package catalog

import "github.com/pollux-motors/showroom/internal/model"

// DefaultPages returns the built-in static pages of the showroom site. They
// are searchable even when no pages have been imported.
func DefaultPages() []model.ContentPage {
	return []model.ContentPage{
		{
			ID:          "export-services",
			Title:       "Export Services",
			Description: "Worldwide vehicle export with shipping, documentation and customs clearance handled end to end.",
			Kind:        model.KindService,
			URL:         "/export",
		},
		{
			ID:          "contact",
			Title:       "Contact",
			Description: "Visit our Dubai showroom, book a test drive or reach our sales advisors.",
			Kind:        model.KindPage,
			URL:         "/contact",
		},
		{
			ID:          "about",
			Title:       "About Pollux Motors",
			Description: "Premium dealership specialising in luxury and performance cars.",
			Kind:        model.KindPage,
			URL:         "/about",
		},
		{
			ID:          "configurator",
			Title:       "Car Configurator",
			Description: "Build your vehicle with custom colours, trims and options.",
			Kind:        model.KindFeature,
			URL:         "/configurator",
		},
		{
			ID:          "compare",
			Title:       "Compare Cars",
			Description: "Compare specifications side by side and see which car leads on each figure.",
			Kind:        model.KindFeature,
			URL:         "/compare",
		},
		{
			ID:          "newsletter",
			Title:       "Newsletter",
			Description: "Subscribe for new arrivals, exclusive offers and event invitations.",
			Kind:        model.KindService,
			URL:         "/newsletter",
		},
		{
			ID:          "chat-assistant",
			Title:       "Chat Assistant",
			Description: "Ask our assistant about models, financing and availability.",
			Kind:        model.KindFeature,
			URL:         "/chat",
		},
	}
}
