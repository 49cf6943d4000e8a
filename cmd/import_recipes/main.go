// Command import_recipes loads recipes from an Excel workbook into the
// database, one recipe per sheet.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/freizeitplan/backend/config"
	"github.com/freizeitplan/backend/internal/database"
	"github.com/freizeitplan/backend/internal/service"
)

func main() {
	path := flag.String("file", "", "path to the .xlsx workbook to import")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: import_recipes -file recipes.xlsx")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	versions := service.NewVersionService(db, logger)
	recipes := service.NewRecipeService(db, versions, logger)
	ingredients := service.NewIngredientService(db, nil, logger)
	importer := service.NewImportService(recipes, ingredients, logger)

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	result, err := importer.ImportWorkbook(context.Background(), f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d recipes, skipped %d", result.Imported, result.Skipped)
	for _, msg := range result.Messages {
		log.Printf("  %s", msg)
	}
}
