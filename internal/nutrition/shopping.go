package nutrition

import (
	"slices"

	"nutriplan/models"
)

// ShoppingList collects the display label of every ingredient used by the
// given menus, without duplicates, in lexical order.
func ShoppingList(menus ...models.DailyMenu) []string {
	items := []string{}
	for _, menu := range menus {
		for _, meal := range menu.Meals {
			for _, dish := range meal.Dishes {
				for _, ingredient := range dish.Ingredients {
					if label := ingredient.Label(); label != "" {
						items = append(items, label)
					}
				}
			}
		}
	}
	slices.Sort(items)
	return slices.Compact(items)
}
