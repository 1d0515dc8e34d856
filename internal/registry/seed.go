package registry

import "context"

// StarterGifts returns a small catalog used to seed a fresh store so an
// ephemeral deployment has something to browse.
func StarterGifts() []GiftInput {
	return []GiftInput{
		{
			Title:        "Porcelain Dinnerware Set",
			Description:  "24-piece porcelain dinnerware set for hosting dinner parties.",
			ImageURL:     "/assets/gifts/dinnerware.png",
			PersonalNote: "We dream of hosting family dinners in our new home.",
			PurchaseLinks: []string{
				"https://www.amazon.com/dinnerware-set",
			},
		},
		{
			Title:        "Stand Mixer",
			Description:  "5-quart stand mixer with whisk, paddle, and dough hook.",
			ImageURL:     "/assets/gifts/mixer.png",
			PersonalNote: "We both have a sweet tooth and love baking together.",
			PurchaseLinks: []string{
				"https://www.amazon.com/stand-mixer",
			},
		},
		{
			Title:        "Crystal Wine Glasses",
			Description:  "Set of 8 hand-blown crystal wine glasses.",
			ImageURL:     "/assets/gifts/glasses.png",
			PersonalNote: "For toasting the moments worth celebrating.",
			PurchaseLinks: []string{
				"https://www.amazon.com/wine-glasses",
			},
		},
	}
}

// SeedGifts inserts the provided gifts into the store, stopping at the
// first failure.
func SeedGifts(ctx context.Context, store Store, gifts []GiftInput) error {
	for _, input := range gifts {
		if _, err := store.CreateGift(ctx, input); err != nil {
			return newStoreError(opSeedGifts, "insert_failed", err)
		}
	}
	return nil
}
