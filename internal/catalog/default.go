package catalog

import "nutriplan/models"

var measured = models.MeasuredIngredient

// Default returns the built-in dish catalog.
func Default() *Catalog {
	c, err := New(map[string][]DishTemplate{
		models.MealBreakfast: {
			{
				Name: "Avocado egg toast",
				Ingredients: []models.Ingredient{
					measured("Whole-grain bread", "2 slices"),
					measured("Avocado", "1/2"),
					measured("Egg", "1"),
					measured("Spinach", "30g"),
				},
				Recipe: "1. Toast the bread\n2. Boil the egg\n3. Slice the avocado\n4. Lightly saute the spinach\n5. Layer everything on the toast",
			},
			{
				Name: "Overnight oats",
				Ingredients: []models.Ingredient{
					measured("Rolled oats", "50g"),
					measured("Milk", "150ml"),
					measured("Banana", "1/2"),
					measured("Walnuts", "10g"),
				},
				Recipe: "1. Combine oats and milk in a jar\n2. Refrigerate overnight\n3. Top with sliced banana and walnuts",
			},
		},
		models.MealLunch: {
			{
				Name: "Chicken and brown rice bowl",
				Ingredients: []models.Ingredient{
					measured("Chicken breast", "100g"),
					measured("Brown rice", "150g"),
					measured("Broccoli", "80g"),
					measured("Olive oil", "1 tsp"),
				},
				Recipe: "1. Cut the chicken into bite-size pieces and season with salt and pepper\n2. Heat olive oil in a pan and cook the chicken\n3. Microwave the broccoli for 3 minutes\n4. Cook the brown rice\n5. Plate everything together",
			},
			{
				Name: "Tofu soba salad",
				Ingredients: []models.Ingredient{
					measured("Soba noodles", "80g"),
					measured("Firm tofu", "100g"),
					measured("Cucumber", "1/2"),
					measured("Sesame dressing", "1 tbsp"),
				},
				Recipe: "1. Boil the soba and rinse in cold water\n2. Cube the tofu and slice the cucumber\n3. Toss with the dressing",
			},
		},
		models.MealDinner: {
			{
				Name: "Baked salmon with quinoa",
				Ingredients: []models.Ingredient{
					measured("Salmon", "1 fillet"),
					measured("Quinoa", "50g"),
					measured("Asparagus", "6 spears"),
					measured("Lemon", "1/4"),
					measured("Salt", "a pinch"),
				},
				Recipe: "1. Rinse the quinoa and simmer for 20 minutes\n2. Salt the salmon and bake it\n3. Boil the asparagus\n4. Plate and squeeze the lemon over",
			},
			{
				Name: "Pork and vegetable stir-fry",
				Ingredients: []models.Ingredient{
					measured("Pork loin", "100g"),
					measured("Bell pepper", "1"),
					measured("Cabbage", "100g"),
					measured("Soy sauce", "1 tbsp"),
					measured("Rice", "120g"),
				},
				Recipe: "1. Slice the pork and vegetables\n2. Stir-fry the pork until browned\n3. Add vegetables and soy sauce\n4. Serve over rice",
			},
		},
		models.MealSnack: {
			{
				Name: "Greek yogurt with berries",
				Ingredients: []models.Ingredient{
					measured("Greek yogurt", "100g"),
					measured("Mixed berries", "50g"),
					measured("Chia seeds", "1 tsp"),
				},
				Recipe: "Top the yogurt with berries and chia seeds",
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
