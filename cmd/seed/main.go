package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/attirelabs/attire-backend/config"
	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Bulk catalog importer. Expects an XLSX with a header row and the columns:
// Name, Category Slug, Description, Price, Original Price, Image URL,
// Sizes, Colors, Inventory, Featured, Trending.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	categories, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load categories:", err)
	}
	categoryBySlug := make(map[string]uint, len(categories))
	for _, c := range categories {
		categoryBySlug[c.Slug] = c.ID
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath, categoryBySlug)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, categoryBySlug map[string]uint) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	slugCounter := make(map[string]int)
	skippedCount := 0
	unknownCategoryCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skippedCount++
			continue
		}

		cell := func(idx int) string {
			if idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		name := cell(0)
		categorySlug := cell(1)
		description := cell(2)
		priceStr := cell(3)
		originalPriceStr := cell(4)
		imageURL := cell(5)
		sizesStr := cell(6)
		colorsStr := cell(7)
		inventoryStr := cell(8)
		featuredStr := cell(9)
		trendingStr := cell(10)

		if name == "" || categorySlug == "" || priceStr == "" {
			skippedCount++
			continue
		}

		categoryID, ok := categoryBySlug[categorySlug]
		if !ok {
			unknownCategoryCount++
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		var originalPrice *float64
		discount := 0
		if originalPriceStr != "" {
			op, err := strconv.ParseFloat(originalPriceStr, 64)
			if err == nil && op > price {
				originalPrice = &op
				discount = int(math.Round((op - price) / op * 100))
			}
		}

		inventory := 0
		if inventoryStr != "" {
			if n, err := strconv.Atoi(inventoryStr); err == nil && n > 0 {
				inventory = n
			}
		}

		baseSlug := generateSlug(name)
		slug := baseSlug
		if count, exists := slugCounter[baseSlug]; exists {
			slugCounter[baseSlug] = count + 1
			slug = fmt.Sprintf("%s-%d", baseSlug, count+1)
		} else {
			slugCounter[baseSlug] = 1
		}

		product := model.Product{
			Name:          name,
			Slug:          slug,
			Description:   description,
			Price:         price,
			OriginalPrice: originalPrice,
			Discount:      discount,
			CategoryID:    categoryID,
			ImageURL:      imageURL,
			Sizes:         splitList(sizesStr),
			Colors:        splitList(colorsStr),
			Inventory:     inventory,
			Featured:      parseBool(featuredStr),
			Trending:      parseBool(trendingStr),
		}

		products = append(products, product)

		if len(products)%500 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with unknown category: %d\n", unknownCategoryCount)

	return products, nil
}

// generateSlug builds a URL slug from the product name
func generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
