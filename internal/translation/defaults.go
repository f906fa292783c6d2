package translation

// builtin holds the text for the keys used by the default catalog template.
var builtin = [][3]string{
	// key, en, ar
	{"categories.mensApparel", "Men's Apparel", "الملابس الرجالية"},
	{"categories.mensApparelDesc", "Discover the latest trends in men's fashion.", "اكتشف أحدث الاتجاهات في أزياء الرجال."},
	{"categories.womensApparel", "Women's Apparel", "الملابس النسائية"},
	{"categories.womensApparelDesc", "Explore our wide range of women's clothing.", "استكشف مجموعتنا الواسعة من الملابس النسائية."},
	{"categories.kidsClothing", "Kids' Clothing", "ملابس الأطفال"},
	{"categories.kidsClothingDesc", "Dress your little ones in style with our adorable collection.", "ألبس أطفالك الصغار بأناقة مع مجموعتنا الرائعة."},
	{"categories.footwear", "Footwear", "الأحذية"},
	{"categories.footwearDesc", "Step out in comfort and style with our diverse footwear selection.", "انطلق براحة وأناقة مع تشكيلتنا المتنوعة من الأحذية."},
	{"categories.accessories", "Accessories", "الإكسسوارات"},
	{"categories.accessoriesDesc", "Complete your look with our trendy accessories.", "أكمل مظهرك مع إكسسواراتنا العصرية."},
	{"categories.sale", "Sale", "تخفيضات"},
	{"categories.saleDesc", "Grab amazing deals on selected items!", "احصل على صفقات مذهلة على العناصر المحددة!"},

	{"subcategories.tshirts", "T-Shirts", "تي شيرت"},
	{"subcategories.tshirtsDesc", "Comfortable and stylish t-shirts for everyday wear.", "قمصان تي مريحة وأنيقة للارتداء اليومي."},
	{"subcategories.shirts", "Shirts", "قمصان"},
	{"subcategories.shirtsDesc", "Professional and casual shirts for any occasion.", "قمصان رسمية وعارضة تناسب أي مناسبة."},
	{"subcategories.blouses", "Blouses", "بلوزات"},
	{"subcategories.blousesDesc", "Elegant blouses perfect for work or casual outings.", "بلوزات أنيقة مثالية للعمل أو الخروج غير الرسمي."},
	{"subcategories.jeans", "Jeans", "جينز"},
	{"subcategories.jeansDesc", "Durable and fashionable jeans in various fits.", "جينزات متينة وعصرية بمختلف القصات."},
	{"subcategories.jackets", "Jackets", "جاكيتات"},
	{"subcategories.jacketsDesc", "Stay warm and stylish with our jacket collection.", "ابق دافئاً وأنيقاً مع مجموعة الجاكيتات لدينا."},

	{"products.whiteTshirt", "White Crew Neck T-Shirt", "تي شيرت أبيض كلاسيكي"},
	{"products.whiteTshirtDesc", "Classic white crew neck t-shirt made from 100% cotton.", "تي شيرت أبيض كلاسيكي مصنوع من 100% قطن."},
	{"products.vintageTee", "Vintage Graphic Tee", "تي شيرت جرافيك عتيق"},
	{"products.vintageTeeDesc", "Retro-style graphic t-shirt with vintage prints.", "تي شيرت جرافيك بنمط عتيق مع طبعات كلاسيكية."},
	{"products.premiumTee", "Premium Cotton Tee", "تي شيرت قطن فاخر"},
	{"products.premiumTeeDesc", "High-quality cotton t-shirt with superior comfort.", "تي شيرت قطن عالي الجودة براحة فائقة."},
	{"products.whiteDressShirt", "Classic White Dress Shirt", "قميص أبيض رسمي كلاسيكي"},
	{"products.whiteDressShirtDesc", "Professional white dress shirt for business wear.", "قميص أبيض رسمي للارتداء المهني."},
	{"products.plaidShirt", "Casual Plaid Shirt", "قميص كاروهات عارض"},
	{"products.plaidShirtDesc", "Comfortable plaid shirt for casual occasions.", "قميص كاروهات مريح للمناسبات العارضة."},
	{"products.blueJeans", "Classic Blue Jeans", "جينز أزرق كلاسيكي"},
	{"products.blueJeansDesc", "Traditional blue jeans with classic fit.", "جينز أزرق تقليدي بقصة كلاسيكية."},
	{"products.slimJeans", "Slim Fit Dark Jeans", "جينز ضيق داكن"},
	{"products.slimJeansDesc", "Modern slim fit jeans in dark wash.", "جينز ضيق عصري بلون داكن."},
	{"products.leatherJacket", "Leather Bomber Jacket", "جاكيت جلد بومبر"},
	{"products.leatherJacketDesc", "Stylish leather bomber jacket for cool weather.", "جاكيت جلد أنيق للطقس البارد."},
	{"products.cottonVneck", "Soft Cotton V-Neck", "تي شيرت قطن بفتحة V ناعم"},
	{"products.cottonVneckDesc", "Comfortable cotton v-neck t-shirt for women.", "تي شيرت قطن مريح بفتحة V للنساء."},
	{"products.floralTee", "Floral Print Tee", "تي شيرت بطبعة زهور"},
	{"products.floralTeeDesc", "Beautiful floral print t-shirt for casual wear.", "تي شيرت جميل بطبعة زهور للارتداء العارض."},
	{"products.silkBlouse", "Silk Blouse", "بلوزة حرير"},
	{"products.silkBlouseDesc", "Elegant silk blouse perfect for professional settings.", "بلوزة حرير أنيقة مثالية للبيئة المهنية."},
	{"products.animalTee", "Fun Animal Print Tee", "تي شيرت بطبعة حيوانات ممتعة"},
	{"products.animalTeeDesc", "Colorful animal print t-shirt for kids.", "تي شيرت ملون بطبعة حيوانات للأطفال."},

	{"cart.empty", "Your cart is empty", "سلة التسوق فارغة"},
	{"cart.total", "Total", "المجموع"},
	{"voice.listening", "Listening...", "جارٍ الاستماع..."},
	{"voice.startCall", "Start voice shopping", "ابدأ التسوق الصوتي"},
	{"voice.endCall", "End call", "إنهاء المكالمة"},
}

func defaultStrings() map[string]map[Locale]string {
	out := make(map[string]map[Locale]string, len(builtin))
	for _, row := range builtin {
		out[row[0]] = map[Locale]string{English: row[1], Arabic: row[2]}
	}
	return out
}
