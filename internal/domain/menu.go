package domain

type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type MenuCategory struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Menu mirrors the published menu on the marketing site.
var Menu = []MenuCategory{
	{
		ID:   "coffee",
		Name: "Coffee",
		Items: []MenuItem{
			{ID: "c01", Name: "Single Origin Kalimantan", Price: "Rp 65.000", Description: "Campuran biji terbaik dari Sumatra dan Ethiopia"},
			{ID: "c02", Name: "Cold Brew Signature", Price: "Rp 58.000", Description: "Proses 12 jam untuk cita rasa terdalam"},
			{ID: "c03", Name: "Espresso Ritual", Price: "Rp 48.000", Description: "Single origin biji Colombia dengan foam lembut"},
			{ID: "c04", Name: "Artisan Blend", Price: "Rp 52.000", Description: "Campuran biji terbaik dari Sumatra dan Ethiopia"},
		},
	},
	{
		ID:   "non-coffee",
		Name: "Non-Coffee",
		Items: []MenuItem{
			{ID: "n01", Name: "Iced Chocolate", Price: "Rp 52.000", Description: "Coklat dingin premium dengan marshmallow"},
			{ID: "n02", Name: "Matcha Latte", Price: "Rp 48.000", Description: "Matcha premium dari Jepang"},
			{ID: "n03", Name: "Fresh Lemonade", Price: "Rp 38.000", Description: "Lemon segar dengan madu"},
			{ID: "n04", Name: "Turmeric Latte", Price: "Rp 46.000", Description: "Alternatif sehat dengan rempah kunyit"},
		},
	},
	{
		ID:   "pastry",
		Name: "Pastry",
		Items: []MenuItem{
			{ID: "p01", Name: "Chocolate Brownie", Price: "Rp 45.000", Description: "Brownie coklat pekat dengan kacang mete"},
			{ID: "p02", Name: "Almond Croissant", Price: "Rp 38.000", Description: "Croissant lembut dengan filling almond"},
			{ID: "p03", Name: "Red Velvet Cake", Price: "Rp 42.000", Description: "Kue lembut dengan cream cheese frosting"},
			{ID: "p04", Name: "Banana Bread", Price: "Rp 35.000", Description: "Roti pisang dengan taburan gula bubuk"},
		},
	},
}
