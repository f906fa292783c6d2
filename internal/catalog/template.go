package catalog

import "storefront-service/internal/models"

const placeholderImage = "/placeholder.svg"

// DefaultTemplate returns a fresh copy of the seed catalog every new
// merchant is cloned from. Template ids are literal and unscoped.
func DefaultTemplate() models.CatalogSnapshot {
	return cloneSnapshot(models.CatalogSnapshot{
		Categories:    defaultCategories,
		SubCategories: defaultSubCategories,
		Products:      defaultProducts,
	})
}

var defaultCategories = []models.Category{
	{ID: "mens", NameKey: "categories.mensApparel", DescKey: "categories.mensApparelDesc", Icon: "Shirt", Gradient: "from-blue-500 to-blue-600", IsActive: true},
	{ID: "womens", NameKey: "categories.womensApparel", DescKey: "categories.womensApparelDesc", Icon: "User", Gradient: "from-pink-500 to-rose-600", IsActive: true},
	{ID: "kids", NameKey: "categories.kidsClothing", DescKey: "categories.kidsClothingDesc", Icon: "Baby", Gradient: "from-green-500 to-emerald-600", IsActive: true},
	{ID: "footwear", NameKey: "categories.footwear", DescKey: "categories.footwearDesc", Icon: "Footprints", Gradient: "from-orange-500 to-amber-600", IsActive: true},
	{ID: "accessories", NameKey: "categories.accessories", DescKey: "categories.accessoriesDesc", Icon: "Watch", Gradient: "from-purple-500 to-violet-600", IsActive: true},
	{ID: "sale", NameKey: "categories.sale", DescKey: "categories.saleDesc", Icon: "Tag", Gradient: "from-red-500 to-pink-600", IsActive: true},
}

var defaultSubCategories = []models.SubCategory{
	{ID: "tshirts-mens", CategoryIDs: []string{"mens"}, NameKey: "subcategories.tshirts", DescKey: "subcategories.tshirtsDesc", Icon: "Shirt", Gradient: "from-blue-500 to-blue-600", IsActive: true},
	{ID: "shirts-mens", CategoryIDs: []string{"mens"}, NameKey: "subcategories.shirts", DescKey: "subcategories.shirtsDesc", Icon: "Package", Gradient: "from-indigo-500 to-indigo-600", IsActive: true},
	{ID: "jeans-mens", CategoryIDs: []string{"mens"}, NameKey: "subcategories.jeans", DescKey: "subcategories.jeansDesc", Icon: "Scissors", Gradient: "from-gray-500 to-gray-600", IsActive: true},
	{ID: "jackets-mens", CategoryIDs: []string{"mens"}, NameKey: "subcategories.jackets", DescKey: "subcategories.jacketsDesc", Icon: "Zap", Gradient: "from-green-500 to-green-600", IsActive: true},
	{ID: "tshirts-womens", CategoryIDs: []string{"womens"}, NameKey: "subcategories.tshirts", DescKey: "subcategories.tshirtsDesc", Icon: "Shirt", Gradient: "from-pink-500 to-pink-600", IsActive: true},
	{ID: "blouses-womens", CategoryIDs: []string{"womens"}, NameKey: "subcategories.blouses", DescKey: "subcategories.blousesDesc", Icon: "Package", Gradient: "from-rose-500 to-rose-600", IsActive: true},
	{ID: "tshirts-kids", CategoryIDs: []string{"kids"}, NameKey: "subcategories.tshirts", DescKey: "subcategories.tshirtsDesc", Icon: "Shirt", Gradient: "from-yellow-500 to-yellow-600", IsActive: true},
}

var defaultProducts = []models.Product{
	{
		ID: "1", NameKey: "products.whiteTshirt", Name: "White Crew Neck T-Shirt",
		DescKey: "products.whiteTshirtDesc", Description: "Classic white crew neck t-shirt made from 100% cotton.",
		Price: 24.99, Image: placeholderImage,
		Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"White", "Black", "Gray"},
		Category: "mens", SubCategory: "tshirts-mens", IsActive: true,
	},
	{
		ID: "2", NameKey: "products.vintageTee", Name: "Vintage Graphic Tee",
		DescKey: "products.vintageTeeDesc", Description: "Retro-style graphic t-shirt with vintage prints.",
		Price: 29.99, Image: placeholderImage,
		Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"Black", "White", "Navy"},
		Category: "mens", SubCategory: "tshirts-mens", IsActive: true,
	},
	{
		ID: "3", NameKey: "products.premiumTee", Name: "Premium Cotton Tee",
		DescKey: "products.premiumTeeDesc", Description: "High-quality cotton t-shirt with superior comfort.",
		Price: 34.99, Image: placeholderImage,
		Sizes: []string{"S", "M", "L", "XL", "XXL"}, Colors: []string{"White", "Black", "Gray", "Navy"},
		Category: "mens", SubCategory: "tshirts-mens", IsActive: true,
	},
	{
		ID: "4", NameKey: "products.whiteDressShirt", Name: "Classic White Dress Shirt",
		DescKey: "products.whiteDressShirtDesc", Description: "Professional white dress shirt for business wear.",
		Price: 49.99, Image: placeholderImage,
		Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"White", "Light Blue"},
		Category: "mens", SubCategory: "shirts-mens", IsActive: true,
	},
	{
		ID: "5", NameKey: "products.plaidShirt", Name: "Casual Plaid Shirt",
		DescKey: "products.plaidShirtDesc", Description: "Comfortable plaid shirt for casual occasions.",
		Price: 45.99, Image: placeholderImage,
		Sizes: []string{"M", "L", "XL"}, Colors: []string{"Red/Black", "Blue/Green", "Gray/Black"},
		Category: "mens", SubCategory: "shirts-mens", IsActive: true,
	},
	{
		ID: "6", NameKey: "products.blueJeans", Name: "Classic Blue Jeans",
		DescKey: "products.blueJeansDesc", Description: "Traditional blue jeans with classic fit.",
		Price: 59.99, Image: placeholderImage,
		Sizes: []string{"30", "32", "34", "36"}, Colors: []string{"Blue", "Black", "Gray"},
		Category: "mens", SubCategory: "jeans-mens", IsActive: true,
	},
	{
		ID: "7", NameKey: "products.slimJeans", Name: "Slim Fit Dark Jeans",
		DescKey: "products.slimJeansDesc", Description: "Modern slim fit jeans in dark wash.",
		Price: 69.99, Image: placeholderImage,
		Sizes: []string{"30", "32", "34", "36"}, Colors: []string{"Dark Blue", "Black"},
		Category: "mens", SubCategory: "jeans-mens", IsActive: true,
	},
	{
		ID: "8", NameKey: "products.leatherJacket", Name: "Leather Bomber Jacket",
		DescKey: "products.leatherJacketDesc", Description: "Stylish leather bomber jacket for cool weather.",
		Price: 149.99, Image: placeholderImage,
		Sizes: []string{"M", "L", "XL"}, Colors: []string{"Black", "Brown"},
		Category: "mens", SubCategory: "jackets-mens", IsActive: true,
	},
	{
		ID: "9", NameKey: "products.cottonVneck", Name: "Soft Cotton V-Neck",
		DescKey: "products.cottonVneckDesc", Description: "Comfortable cotton v-neck t-shirt for women.",
		Price: 26.99, Image: placeholderImage,
		Sizes: []string{"XS", "S", "M", "L", "XL"}, Colors: []string{"Pink", "White", "Navy", "Gray"},
		Category: "womens", SubCategory: "tshirts-womens", IsActive: true,
	},
	{
		ID: "10", NameKey: "products.floralTee", Name: "Floral Print Tee",
		DescKey: "products.floralTeeDesc", Description: "Beautiful floral print t-shirt for casual wear.",
		Price: 31.99, Image: placeholderImage,
		Sizes: []string{"S", "M", "L"}, Colors: []string{"Pink/Green", "Blue/White", "Purple/Yellow"},
		Category: "womens", SubCategory: "tshirts-womens", IsActive: true,
	},
	{
		ID: "11", NameKey: "products.silkBlouse", Name: "Silk Blouse",
		DescKey: "products.silkBlouseDesc", Description: "Elegant silk blouse perfect for professional settings.",
		Price: 79.99, Image: placeholderImage,
		Sizes: []string{"XS", "S", "M", "L"}, Colors: []string{"White", "Cream", "Light Pink"},
		Category: "womens", SubCategory: "blouses-womens", IsActive: true,
	},
	{
		ID: "12", NameKey: "products.animalTee", Name: "Fun Animal Print Tee",
		DescKey: "products.animalTeeDesc", Description: "Colorful animal print t-shirt for kids.",
		Price: 19.99, Image: placeholderImage,
		Sizes: []string{"2T", "3T", "4T", "5T"}, Colors: []string{"Multi-Color", "Blue", "Pink"},
		Category: "kids", SubCategory: "tshirts-kids", IsActive: true,
	},
}

func cloneSnapshot(s models.CatalogSnapshot) models.CatalogSnapshot {
	out := models.CatalogSnapshot{
		Categories:    make([]models.Category, len(s.Categories)),
		SubCategories: make([]models.SubCategory, len(s.SubCategories)),
		Products:      make([]models.Product, len(s.Products)),
	}
	copy(out.Categories, s.Categories)
	for i, sub := range s.SubCategories {
		out.SubCategories[i] = cloneSubCategory(sub)
	}
	for i, p := range s.Products {
		out.Products[i] = cloneProduct(p)
	}
	return out
}

func cloneSubCategory(s models.SubCategory) models.SubCategory {
	s.CategoryIDs = cloneStrings(s.CategoryIDs)
	return s
}

func cloneProduct(p models.Product) models.Product {
	p.Sizes = cloneStrings(p.Sizes)
	p.Colors = cloneStrings(p.Colors)
	return p
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
