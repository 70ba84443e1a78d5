package catalog

// Default returns the compiled-in v5.0 signal catalogue targeting Southern
// California food and lifestyle creators. Keyword matching downstream is
// case-insensitive substring, so entries here keep their natural casing.
func Default() *Catalog {
	return &Catalog{
		Version: "5.0",
		Positive: []Group{
			{Name: "identity_keywords", Points: 10, Keywords: []string{
				"foodie", "food lover", "eats", "food diary", "food adventures", "food journal",
				"eating my way", "food recs", "blogger", "content creator", "lifestyle",
				"creator", "diaries", "influencer", "brunch", "wellness", "explore",
				"adventurer", "travel", "discover",
			}},
			{Name: "niche_food_keywords", Points: 10, Keywords: []string{
				"matcha", "coffee", "boba", "ramen", "sushi", "tacos", "pizza", "kbbq",
				"korean bbq", "birria", "poke", "acai", "omakase", "dim sum", "dumplings",
				"noodles", "desserts", "fine dining", "hidden gem", "hidden gems",
				"must try", "best eats", "food crawl", "food tour",
			}},
			{Name: "aesthetic_tribe", Points: 10, Keywords: []string{
				"pilates", "yoga", "wellness journey", "clean girl", "that girl",
				"matcha girl", "soft life", "romanticize", "aesthetic", "curated",
				"minimal", "slow living", "farmers market", "sunday reset", "hot girl walk",
			}},
			{Name: "professional_role", Points: 20, Keywords: []string{
				"UGC", "UGC creator", "recipe developer", "home cook", "food photographer",
				"barista", "reviewer", "social media manager", "content specialist",
				"creative strategist", "brand strategist",
			}},
			{Name: "location_strong", Points: 25, Keywords: []string{
				"DTLA", "NELA", "WeHo", "Silverlake", "Silver Lake", "Echo Park",
				"Highland Park", "West Adams", "Koreatown", "Ktown", "SGV", "Los Feliz",
				"Frogtown", "Arts District", "Little Tokyo",
				"LA", "Los Angeles", "Hollywood", "Beverly Hills", "Santa Monica",
				"Culver City", "Pasadena", "Glendale", "Burbank", "Long Beach", "Torrance",
				"Little Arabia", "Costa Mesa", "Newport", "Huntington", "Laguna",
				"Dana Point", "San Clemente",
				"Orange County", "OC", "Irvine", "Anaheim", "Fullerton", "Tustin", "Mission Viejo",
				"North Park", "Convoy", "Convoy District", "La Jolla", "Hillcrest",
				"Little Italy", "Gaslamp", "Pacific Beach", "Encinitas",
				"San Diego", "SD", "Carlsbad", "Oceanside", "Del Mar", "Chula Vista",
				"SoCal", "Southern California", "Inland Empire", "IE", "South Bay", "Westside",
				"310", "323", "213", "818", "626", "424", "949", "714", "657",
				"619", "858", "760", "442", "951", "909",
			}},
			{Name: "intent_commercial", Points: 20, Keywords: []string{
				"collab", "collaborate", "let's collab", "open to collab", "partnership",
				"partner", "brand partner", "brand ambassador", "ambassador",
				"DM for", "inquiries", "business inquiries", "email for", "book me",
				"available for", "work with me", "hire me", "contact for",
				"PR", "PR friendly", "gifted", "sponsored", "media kit", "portfolio",
				"rate card", "managed by", "rep", "talent",
				"LTK", "LikeToKnow.it", "Amazon storefront", "affiliate", "link in bio",
				"\U0001F48C", "\U0001F4E7", "✉️", "\U0001F4E9",
			}},
		},
		VenueAnchors: Group{Name: "venue_anchor_match", Points: 15, Keywords: []string{
			"Villa's Tacos", "Kumquat Coffee", "Cafe de Leche", "Kitchen Mouse",
			"Maydan Market", "Compass Rose", "Yhing Yhang BBQ", "Bestia", "Bavel",
			"Republique", "Grand Central Market", "Smorgasburg LA", "Park's BBQ",
			"Quarters", "Sun Nong Dan",
			"Rodeo 39", "Packing District", "Forn Al Hara", "House of Mandi",
			"The Lab", "The Camp", "SteelCraft", "Lido Marina Village",
			"Steamy Piggy", "Rakiraki", "Somisomi", "Menya Ultra", "Pigment",
			"Extraordinary Desserts", "Ironside",
		}},
		GoodCategories: []string{
			"Blogger", "Personal Blog", "Creator", "Video Creator", "Digital Creator",
			"Food Blogger", "Photographer", "Public Figure", "Writer", "Influencer",
			"Content Creator", "Social Media Personality", "Artist", "Editor",
		},
		GoodCategoryPoints: 10,
		SoftCategory:       "Food & Beverage",
		Negative: []Group{
			{Name: "business_keywords", Points: -25, Keywords: []string{
				"shop", "order", "delivery", "shipping", "store", "buy now", "order online",
				"online ordering", "pickup", "takeout", "dine-in", "curbside",
				"menu", "reservations", "book a table", "now open", "grand opening",
				"new location", "catering", "private chef for hire",
				"discount code", "promo code", "use code", "10% off", "20% off",
				"limited time offer", "free shipping", "link in bio to shop",
				"hiring", "we're hiring", "apply now", "join our team", "careers", "job opening",
				"franchise", "wholesale", "distribution", "corporate events", "supplier",
				"vendor", "manufacturer", "ghost kitchen", "cloud kitchen", "commercial kitchen",
			}},
			{Name: "engagement_pod", Points: -100, Keywords: []string{
				"F4F", "L4L", "FxF", "LxL", "Dx3", "follow back", "follow 4 follow",
				"follow4follow", "like 4 like", "like4like", "gain train", "gain",
				"engagement group", "follow loop", "instant follow", "nsd", "mega",
				"boost", "shoutout for shoutout", "s4s", "SFS",
			}},
			{Name: "fan_account", Points: -75, Keywords: []string{
				"repost", "regram", "fan page", "fan account", "daily", "spotted", "best of",
				"top posts", "curated by", "features", "submit", "DM to be featured",
				"tag to be featured", "DM for feature", "tag us", "community page",
				"promo", "update page", "archive", "no copyright intended", "credits to owner",
				"all rights to", "dm for credit", "dm to remove", "not my photo",
				"photo by", "credit to", "aggregator", "news page", "vibes", "magazine",
			}},
			{Name: "wrong_profession", Points: -30, Keywords: []string{
				"realtor", "real estate", "agent", "broker", "lender", "mortgage",
				"clinic", "medspa", "botox", "salon", "lashes", "brows", "hair", "barber",
				"tattoo", "gym owner", "crossfit box", "coach", "consultant", "lawyer",
				"attorney", "insurance", "financial advisor",
			}},
			{Name: "ai_content", Points: -50, Keywords: []string{
				"AI Art", "Midjourney", "DALL-E", "AI generated", "virtual influencer",
				"digital human", "CGI model", "tapestry of flavors", "culinary symphony",
				"embarking on a journey",
			}},
			{Name: "spam_scam", Points: -100, Keywords: []string{
				"NFT", "crypto", "forex", "bitcoin", "invest", "wealth", "trading",
				"passive income", "make money", "get rich", "MLM", "network marketing",
			}},
		},
		BadCategories: []string{
			"Restaurant", "Grocery Store", "Local Business", "Shopping & Retail",
			"Product/Service", "E-commerce Website", "Retail Company",
			"Food Delivery Service", "Food & Beverage Company", "Food Processing",
			"Caterer", "Food Distributor", "Food Wholesaler", "Food Stand",
			"Fast Food Restaurant", "Convenience Store", "Supermarket", "Bakery",
			"Bar", "Cafe", "Food Truck", "Kitchen/Cooking", "Marketing Agency",
			"Advertising Agency", "Media/News Company",
		},
		BadCategoryPoints: -40,
		Community:         defaultCommunity(),
	}
}

func defaultCommunity() Community {
	return Community{
		LocationTiers: []LocationTier{
			{Name: "strict_emoji", Points: 25, Keywords: []string{
				"\U0001F4CD los angeles", "\U0001F4CD la", "\U0001F4CD l.a.",
				"\U0001F4CD dtla", "\U0001F4CD downtown la",
				"\U0001F4CD orange county", "\U0001F4CD oc", "\U0001F4CD o.c.",
				"\U0001F4CD irvine", "\U0001F4CD costa mesa", "\U0001F4CD newport",
				"\U0001F4CD tustin", "\U0001F4CD lake forest", "\U0001F4CD mission viejo",
				"\U0001F4CD anaheim", "\U0001F4CD santa ana", "\U0001F4CD fullerton",
				"\U0001F4CD san diego", "\U0001F4CD sd",
				"\U0001F4CD socal", "\U0001F4CD southern california",
				"\U0001F4CD sgv", "\U0001F4CD ie", "\U0001F4CD inland empire",
			}},
			{Name: "pipe_format", Points: 22, Keywords: []string{
				"la | oc", "oc | la", "la/oc", "oc/la",
				"la | oc | sd", "oc | la | sd",
				"la & oc", "oc & la",
				"in oc", "in la", "based in oc", "based in la",
				"based in sd", "sd based", "la based", "oc based",
				"oc | la | ie", "la | sgv",
			}},
			{Name: "la_city", Points: 18, Keywords: []string{
				"los angeles", "dtla", "downtown la", "downtown los angeles",
				"hollywood", "west hollywood", "weho", "beverly hills",
				"santa monica", "venice", "culver city", "mar vista",
				"silver lake", "silverlake", "echo park", "los feliz",
				"highland park", "eagle rock", "pasadena", "glendale",
				"burbank", "long beach", "torrance", "el segundo",
				"koreatown", "k-town", "ktown", "little tokyo",
				"usc", "ucla", "csun", "csula", "lmu",
			}},
			{Name: "oc_city", Points: 18, Keywords: []string{
				"orange county", "irvine", "costa mesa", "newport beach",
				"newport", "huntington beach", "hb", "anaheim", "fullerton",
				"garden grove", "westminster", "little saigon",
				"tustin", "orange", "santa ana", "laguna beach", "laguna",
				"dana point", "san clemente", "mission viejo", "lake forest",
				"aliso viejo", "yorba linda", "brea", "placentia",
				"uci", "csuf", "chapman",
			}},
			{Name: "sd_city", Points: 18, Keywords: []string{
				"san diego", "la jolla", "pacific beach", "pb",
				"north park", "hillcrest", "gaslamp", "downtown sd",
				"convoy", "convoy district", "kearny mesa",
				"encinitas", "carlsbad", "oceanside", "del mar",
				"chula vista", "national city",
				"sdsu", "ucsd", "usd",
			}},
			{Name: "ie_city", Points: 18, Keywords: []string{
				"inland empire", "riverside", "san bernardino", "ontario",
				"rancho cucamonga", "fontana", "redlands", "claremont",
				"upland", "pomona", "corona", "moreno valley",
				"temecula", "murrieta", "chino", "chino hills",
				"ucr",
			}},
			{Name: "sgv_hood", Points: 18, Keywords: []string{
				"alhambra", "monterey park", "arcadia", "san gabriel",
				"rowland heights", "hacienda heights", "temple city",
				"626", "sgv", "san gabriel valley",
			}},
			{Name: "area_code", Points: 8, Keywords: []string{
				"213", "310", "323", "424", "818", "626", "562",
				"714", "949", "657",
				"909", "951", "760",
				"619", "858",
			}},
			{Name: "regional_soft", Points: 12, ExcludeWith: "baja", Keywords: []string{
				"socal", "so cal", "southern california",
				"west coast", "california", "cali",
			}},
		},
		LocationBlacklist: []string{
			"florida", "miami", "orlando", "tampa",
			"nyc", "new york", "brooklyn", "manhattan",
			"texas", "houston", "dallas", "austin",
			"vegas", "las vegas", "henderson",
			"chicago", "atlanta", "phoenix", "seattle",
			"denver", "boston", "philadelphia",
			"uk", "london", "toronto", "canada",
		},
		ContentGroups: []Group{
			{Name: "food_primary", Points: 15, Keywords: []string{
				"foodie", "food blogger", "food vlogger", "food creator",
				"food review", "food recs", "food lover",
				"eats", "eating", "hungry", "brunch", "dinner", "lunch",
				"restaurant", "dining", "dessert", "desserts",
				"yelp elite", "local eats",
			}},
			{Name: "food_niche", Points: 10, Keywords: []string{
				"vegan", "halal", "plant-based", "gluten-free", "keto",
				"mukbang", "asmr food", "food asmr",
				"hidden gems", "hole in the wall", "local finds",
				"brunch spots", "late night eats", "date night",
				"coffee & cafes", "desserts only",
			}},
			{Name: "food_specific", Points: 0, Keywords: []string{
				"tacos", "sushi", "ramen", "pho", "boba", "matcha",
				"pizza", "burgers", "bbq", "kbbq", "korean bbq",
				"dim sum", "hot pot", "noodles", "dumplings",
			}},
			{Name: "lifestyle", Points: 15, Keywords: []string{
				"lifestyle", "day in my life", "ditl", "daily vlog",
				"week in my life", "vlog", "vlogger", "digital diary",
				"life update", "come with me", "spend the day",
				"my life", "living in",
			}},
			{Name: "local_discovery", Points: 10, Keywords: []string{
				"local spots", "local guide", "local finds",
				"things to do", "places to go", "hidden gems",
				"exploring", "adventures", "local adventures",
			}},
			{Name: "coffee", Points: 15, Keywords: []string{
				"coffee", "cafe", "café", "matcha", "latte",
				"coffee shop", "coffee spots", "coffee lover",
				"caffeine", "espresso", "barista",
			}},
			{Name: "creator", Points: 12, Keywords: []string{
				"content creator", "creator", "ugc", "ugc creator",
				"video creator", "tiktok", "reels", "short form",
				"influencer", "blogger", "vlogger",
			}},
			{Name: "collab_ready", Points: 15, Keywords: []string{
				"dm for collabs", "email for collabs", "open to collabs",
				"collabs", "partnerships", "brand deals", "pr friendly",
				"pr", "collab inquiries", "media kit",
				"\U0001F4E7", "✉️", "\U0001F4E9", "\U0001F48C",
			}},
			{Name: "college", Points: 12, Keywords: []string{
				"uci", "ucla", "usc", "csuf", "csulb", "sdsu",
				"cal state", "uc irvine", "college", "university",
				"student", "grad student", "campus life",
			}},
		},
		IntegrityGroups: []string{
			"food_primary", "food_niche", "food_specific",
			"lifestyle", "local_discovery", "coffee", "college",
			"creator",
		},
		UsernameBlacklist: []string{
			"restaurant", "bakery", "cafe", "café", "kitchen", "catering", "caterer",
			"bistro", "eatery", "grill", "pizzeria", "taqueria", "brewery",
			"taproom", "diner", "creamery", "butcher", "market", "grocer",
			"official", "brand", "shop", "store", "boutique", "supply", "supplies",
			"company", "inc", "ltd", "corporation", "properties", "realestate",
			"realty", "agent", "broker", "law", "legal", "firm", "associates",
			"clinic", "dental", "medical", "doctor", "dr", "md", "dds", "chiro",
			"spa", "salon", "barber", "studio", "nails", "lash", "beautybar",
			"news", "tv", "radio", "magazine", "media",
		},
		UsernameWhitelist: []string{
			".*eats.*", ".*food.*", ".*hungry.*", ".*belly.*", ".*taste.*",
			".*bites.*", ".*cravings.*", ".*nom.*", ".*yummy.*", ".*delicious.*",
			".*appetite.*", ".*feast.*", ".*snack.*", ".*munch.*", ".*slurp.*",
			".*cook.*", ".*chef.*", ".*kitchen.*", ".*bakery.*", ".*market.*",
		},
	}
}
