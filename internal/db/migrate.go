package db

import (
	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedCatalog(); err != nil {
		logger.Error("Failed to seed catalog", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// seedCatalog inserts the launch catalog: six categories and a starter set
// of products. Skipped when categories already exist.
func seedCatalog() error {
	var count int64
	if err := DB.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding catalog data...")

	categories := []model.Category{
		{Name: "Men", Slug: "men", Description: "Men's Fashion", ImageURL: "https://images.unsplash.com/photo-1550246140-29f40b909e5a?q=80&w=600"},
		{Name: "Women", Slug: "women", Description: "Women's Fashion", ImageURL: "https://images.unsplash.com/photo-1485968579580-b6d095142e6e?q=80&w=600"},
		{Name: "Kids", Slug: "kids", Description: "Kids Fashion", ImageURL: "https://images.unsplash.com/photo-1624435990733-aca957d0bbcf?q=80&w=600"},
		{Name: "Ethnic", Slug: "ethnic", Description: "Ethnic Wear", ImageURL: "https://images.unsplash.com/photo-1610030469668-76cd682c6e53?q=80&w=600"},
		{Name: "Western", Slug: "western", Description: "Western Wear", ImageURL: "https://images.unsplash.com/photo-1539109136881-3be0616acf4b?q=80&w=600"},
		{Name: "Accessories", Slug: "accessories", Description: "Fashion Accessories", ImageURL: "https://images.unsplash.com/photo-1601821765780-754fa98637c1?q=80&w=600"},
	}

	for i := range categories {
		if err := DB.Create(&categories[i]).Error; err != nil {
			logger.Error("Failed to create category", err, map[string]interface{}{
				"slug": categories[i].Slug,
			})
			return err
		}
	}

	categoryBySlug := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryBySlug[c.Slug] = c.ID
	}

	products := []model.Product{
		{
			Name:          "Floral Summer Dress",
			Slug:          "floral-summer-dress",
			Description:   "A beautiful floral summer dress perfect for warm weather.",
			Price:         1999,
			OriginalPrice: floatPtr(2499),
			Discount:      20,
			CategoryID:    categoryBySlug["women"],
			Images: []string{
				"https://images.unsplash.com/photo-1623609163859-ca93c959b98a?q=80&w=600",
				"https://images.unsplash.com/photo-1612336307429-8a898d10e223?q=80&w=600",
				"https://images.unsplash.com/photo-1572804013427-4d7ca7268217?q=80&w=600",
			},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Floral", "White"},
			Inventory:   45,
			Featured:    true,
			Trending:    true,
			Rating:      4.5,
			ReviewCount: 124,
		},
		{
			Name:          "Men's Mint Striped Shirt",
			Slug:          "mens-mint-striped-shirt",
			Description:   "Premium mint green striped shirt crafted with soft fabric for a relaxed, stylish summer look. Perfect for beach holidays and casual outings.",
			Price:         1499,
			OriginalPrice: floatPtr(1999),
			Discount:      25,
			CategoryID:    categoryBySlug["men"],
			Images: []string{
				"/assets/mint-striped-shirt.png",
			},
			Sizes:       []string{"S", "M", "L", "XL", "XXL"},
			Colors:      []string{"Mint"},
			Inventory:   78,
			Featured:    true,
			Trending:    true,
			Rating:      4.9,
			ReviewCount: 112,
		},
		{
			Name:          "Embroidered Lehenga",
			Slug:          "embroidered-lehenga",
			Description:   "A stunning embroidered lehenga for special occasions.",
			Price:         4999,
			OriginalPrice: floatPtr(7999),
			Discount:      38,
			CategoryID:    categoryBySlug["ethnic"],
			Images: []string{
				"https://images.unsplash.com/photo-1598359007833-f8a3ecfccee6?q=80&w=600",
				"https://images.unsplash.com/photo-1600488999785-a12f63eb5a16?q=80&w=600",
				"https://images.unsplash.com/photo-1600488999872-fb78426ee27f?q=80&w=600",
			},
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Red", "Maroon"},
			Inventory:   32,
			Featured:    true,
			Rating:      4.0,
			ReviewCount: 42,
		},
		{
			Name:          "Classic White Shirt",
			Slug:          "classic-white-shirt",
			Description:   "A timeless white shirt for formal and casual occasions.",
			Price:         999,
			OriginalPrice: floatPtr(1299),
			Discount:      23,
			CategoryID:    categoryBySlug["western"],
			Images: []string{
				"https://images.unsplash.com/photo-1624835020714-f9521e3e1421?q=80&w=600",
				"https://images.unsplash.com/photo-1563630423918-b58f07336ac9?q=80&w=600",
				"https://images.unsplash.com/photo-1577381450259-a0e1f56a85a6?q=80&w=600",
			},
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White"},
			Inventory:   120,
			Rating:      5.0,
			ReviewCount: 215,
		},
		{
			Name:          "Kids Casual T-Shirt",
			Slug:          "kids-casual-t-shirt",
			Description:   "Comfortable and colorful t-shirt for kids.",
			Price:         499,
			OriginalPrice: floatPtr(699),
			Discount:      29,
			CategoryID:    categoryBySlug["kids"],
			Images: []string{
				"https://images.unsplash.com/photo-1476344305746-32062f10f791?q=80&w=600",
				"https://images.unsplash.com/photo-1535572290543-960a8046f5af?q=80&w=600",
				"https://images.unsplash.com/photo-1540479859555-17af45c78602?q=80&w=600",
			},
			Sizes:       []string{"2-3Y", "4-5Y", "6-7Y"},
			Colors:      []string{"Blue", "Yellow", "Green"},
			Inventory:   85,
			Featured:    true,
			Rating:      4.7,
			ReviewCount: 63,
		},
		{
			Name:          "Handcrafted Earrings",
			Slug:          "handcrafted-earrings",
			Description:   "Beautiful handcrafted earrings to complement your ethnic wear.",
			Price:         799,
			OriginalPrice: floatPtr(1199),
			Discount:      33,
			CategoryID:    categoryBySlug["accessories"],
			Images: []string{
				"https://images.unsplash.com/photo-1588444837495-c6cfeb53f32d?q=80&w=600",
				"https://images.unsplash.com/photo-1598224572873-f81da0bf1222?q=80&w=600",
				"https://images.unsplash.com/photo-1633810541031-84d98b471cae?q=80&w=600",
			},
			Colors:      []string{"Gold", "Silver"},
			Inventory:   54,
			Trending:    true,
			Rating:      4.8,
			ReviewCount: 97,
		},
		{
			Name:          "Women's Designer Saree",
			Slug:          "womens-designer-saree",
			Description:   "Elegant designer saree for special occasions.",
			Price:         3999,
			OriginalPrice: floatPtr(5999),
			Discount:      33,
			CategoryID:    categoryBySlug["ethnic"],
			Images: []string{
				"https://images.unsplash.com/photo-1610030469668-76cd682c6e53?q=80&w=600",
				"https://images.unsplash.com/photo-1611042553484-d61f84d22784?q=80&w=600",
				"https://images.unsplash.com/photo-1603400521630-9f2de124b33b?q=80&w=600",
			},
			Colors:      []string{"Teal", "Pink"},
			Inventory:   40,
			Featured:    true,
			Trending:    true,
			Rating:      4.9,
			ReviewCount: 124,
		},
		{
			Name:          "Men's Slim Fit Jeans",
			Slug:          "mens-slim-fit-jeans",
			Description:   "Comfortable slim fit jeans for a modern look.",
			Price:         1299,
			OriginalPrice: floatPtr(1799),
			Discount:      28,
			CategoryID:    categoryBySlug["western"],
			Images: []string{
				"https://images.unsplash.com/photo-1541099649105-f69ad21f3246?q=80&w=600",
				"https://images.unsplash.com/photo-1555689502-c4b22d76c56f?q=80&w=600",
				"https://images.unsplash.com/photo-1542060748-10c28b62716f?q=80&w=600",
			},
			Sizes:       []string{"30", "32", "34", "36"},
			Colors:      []string{"Dark Blue", "Black"},
			Inventory:   95,
			Trending:    true,
			Rating:      4.6,
			ReviewCount: 78,
		},
	}

	for i := range products {
		if err := DB.Create(&products[i]).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"slug": products[i].Slug,
			})
			return err
		}
	}

	logger.Info("Catalog data seeded", map[string]interface{}{
		"categories": len(categories),
		"products":   len(products),
	})
	return nil
}
