// internal/domain/basket/seed.go
package basket

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedSampleData fills an empty catalog with sample gift baskets. Does
// nothing when baskets already exist.
func (s *Service) SeedSampleData() error {
	count, err := s.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, payload := range sampleBaskets() {
		if _, err := s.Create(&payload); err != nil {
			return fmt.Errorf("failed to seed basket %q: %w", payload.Title, err)
		}
	}
	return nil
}

func sampleBaskets() []Payload {
	return []Payload{
		{
			Title:    "Crăciun Clasic",
			Slug:     "craciun-clasic",
			Category: "Crăciun",
			Prompt:   "Coș cadou perfect pentru magia sărbătorilor de iarnă",
			Tags:     []string{"festiv", "tradițional", "premium"},
			Price:    decimal.RequireFromString("249.99"),
			Stock:    15,
			Description: "<p>Un coș festiv plin cu delicatesele tradiționale ale sărbătorilor: ciocolată premium, " +
				"nuci glazurate, vin spumos și decorațiuni elegante.</p>" +
				"<ul><li>Ciocolată artizanală belgiană 200g</li><li>Vin spumos Prosecco 750ml</li>" +
				"<li>Nuci caramelizate mix 150g</li><li>Biscuiți cu scorțișoară</li><li>Lumânare parfumată Crăciun</li></ul>",
			HeroImage: "https://images.unsplash.com/photo-1470337458703-46ad1756a187?auto=format&fit=crop&w=900&q=80",
		},
		{
			Title:    "Love & Roses",
			Slug:     "love-roses",
			Category: "Romantic",
			Prompt:   "Declarație de dragoste într-un coș elegant",
			Tags:     []string{"romantic", "aniversare", "trandafiri"},
			Price:    decimal.RequireFromString("189.50"),
			Stock:    20,
			Description: "<p>Trandafiri proaspeți, praline fine și un vin roze selecționat: tot ce are nevoie o seară " +
				"specială în doi.</p>" +
				"<ul><li>Buchet de trandafiri roșii</li><li>Praline belgiene 150g</li>" +
				"<li>Vin roze demisec 750ml</li><li>Lumânări parfumate</li></ul>",
			HeroImage: "https://images.unsplash.com/photo-1518895949257-7621c3c786d7?auto=format&fit=crop&w=900&q=80",
		},
		{
			Title:    "Gourmet Deluxe",
			Slug:     "gourmet-deluxe",
			Category: "Gourmet",
			Prompt:   "Selecție rafinată pentru cunoscătorii gusturilor fine",
			Tags:     []string{"gourmet", "delicatese", "premium"},
			Price:    decimal.RequireFromString("389.00"),
			Stock:    8,
			Description: "<p>O călătorie culinară prin delicatese europene: brânzeturi maturate, mezeluri artizanale, " +
				"dulcețuri rare și un vin sec de colecție.</p>" +
				"<ul><li>Brânză maturată 24 luni 200g</li><li>Prosciutto crudo 100g</li>" +
				"<li>Dulceață de smochine 250g</li><li>Vin sec de colecție 750ml</li><li>Crackers artizanali</li></ul>",
			HeroImage: "https://images.unsplash.com/photo-1542838132-92c53300491e?auto=format&fit=crop&w=900&q=80",
		},
		{
			Title:    "Bun venit, bebe!",
			Slug:     "bun-venit-bebe",
			Category: "Ocazii speciale",
			Prompt:   "Cadou călduros pentru proaspeții părinți",
			Tags:     []string{"bebe", "familie", "cadou"},
			Price:    decimal.RequireFromString("159.99"),
			Stock:    12,
			Description: "<p>Un coș gingaș pentru cei mai mici: păturică moale, jucărie de pluș și produse de îngrijire " +
				"delicate, alături de un ceai relaxant pentru părinți.</p>" +
				"<ul><li>Păturică din bumbac organic</li><li>Jucărie de pluș</li>" +
				"<li>Set îngrijire bebeluși</li><li>Ceai de plante relaxant</li></ul>",
			HeroImage: "https://images.unsplash.com/photo-1515488042361-ee00e0ddd4e4?auto=format&fit=crop&w=900&q=80",
		},
		{
			Title:    "Office Treats",
			Slug:     "office-treats",
			Category: "Corporate",
			Prompt:   "Mulțumiri elegante pentru parteneri și colegi",
			Tags:     []string{"corporate", "cafea", "birou"},
			Price:    decimal.RequireFromString("129.00"),
			Stock:    30,
			Description: "<p>Un coș echilibrat pentru pauzele de birou: cafea de specialitate, biscuiți fini și " +
				"ciocolată care îndulcește orice ședință.</p>" +
				"<ul><li>Cafea de specialitate 250g</li><li>Biscuiți cu unt</li>" +
				"<li>Tabletă de ciocolată 70%</li><li>Mix de fructe uscate</li></ul>",
			HeroImage: "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&w=900&q=80",
		},
	}
}
