// Command seed imports a catalog workbook into the database. The workbook
// carries four sheets: Products, OptionGroups, Options and Variants; rows
// reference each other by name, so the sheets must be imported in that order.
//
//	go run ./cmd/seed -file catalog.xlsx
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/HovVathana/shoppink-backend/config"
	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/db"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func main() {
	file := flag.String("file", "catalog.xlsx", "path to the catalog workbook")
	flag.Parse()

	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	workbook, err := excelize.OpenFile(*file)
	if err != nil {
		logger.Fatal("Failed to open workbook", err, map[string]interface{}{
			"file": *file,
		})
	}
	defer workbook.Close()

	importer := newImporter(db.GetDB())
	if err := importer.run(workbook); err != nil {
		logger.Fatal("Import failed", err)
	}

	logger.Info("Catalog import completed", map[string]interface{}{
		"products": len(importer.products),
		"groups":   len(importer.groups),
		"options":  len(importer.options),
		"variants": importer.variantCount,
	})
}

type importer struct {
	db           *gorm.DB
	products     map[string]*model.Product     // by product name
	groups       map[string]*model.OptionGroup // by "product|group"
	options      map[string]*model.Option      // by "product|group|option"
	variantCount int
}

func newImporter(gdb *gorm.DB) *importer {
	return &importer{
		db:       gdb,
		products: make(map[string]*model.Product),
		groups:   make(map[string]*model.OptionGroup),
		options:  make(map[string]*model.Option),
	}
}

func (im *importer) run(workbook *excelize.File) error {
	return im.db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			sheet  string
			handle func(*gorm.DB, []string) error
		}{
			{"Products", im.importProduct},
			{"OptionGroups", im.importGroup},
			{"Options", im.importOption},
			{"Variants", im.importVariant},
		}
		for _, step := range steps {
			rows, err := workbook.GetRows(step.sheet)
			if err != nil {
				return fmt.Errorf("sheet %s: %w", step.sheet, err)
			}
			for i, row := range rows {
				if i == 0 || len(row) == 0 {
					continue // header or blank
				}
				if err := step.handle(tx, row); err != nil {
					return fmt.Errorf("sheet %s row %d: %w", step.sheet, i+1, err)
				}
			}
		}
		return nil
	})
}

// Products: Name | Description | Price | Category | Stock | Published
func (im *importer) importProduct(tx *gorm.DB, row []string) error {
	name := cell(row, 0)
	if name == "" {
		return fmt.Errorf("product name is required")
	}

	product := &model.Product{
		Name:          name,
		Description:   cell(row, 1),
		Price:         parseFloat(cell(row, 2)),
		Category:      model.ProductCategory(defaultString(cell(row, 3), string(model.CategoryOther))),
		StockQuantity: parseInt(cell(row, 4)),
		IsPublished:   parseBool(defaultString(cell(row, 5), "true")),
	}
	if err := tx.Create(product).Error; err != nil {
		return err
	}
	im.products[name] = product
	return nil
}

// OptionGroups: Product | Name | SelectionType | Required | Parent | Stock | SortOrder
func (im *importer) importGroup(tx *gorm.DB, row []string) error {
	product, ok := im.products[cell(row, 0)]
	if !ok {
		return fmt.Errorf("unknown product %q", cell(row, 0))
	}
	name := cell(row, 1)

	group := &model.OptionGroup{
		ProductID:     product.ID,
		Name:          name,
		SelectionType: model.SelectionType(defaultString(cell(row, 2), string(model.SelectionSingle))),
		IsRequired:    parseBool(cell(row, 3)),
		StockQuantity: parseInt(cell(row, 5)),
		SortOrder:     parseInt(cell(row, 6)),
	}
	if parentName := cell(row, 4); parentName != "" {
		parent, ok := im.groups[groupKey(product.Name, parentName)]
		if !ok {
			return fmt.Errorf("unknown parent group %q", parentName)
		}
		parent.IsParent = true
		if err := tx.Model(parent).Update("is_parent", true).Error; err != nil {
			return err
		}
		group.ParentGroupID = &parent.ID
	}

	if err := tx.Create(group).Error; err != nil {
		return err
	}
	im.groups[groupKey(product.Name, name)] = group
	return nil
}

// Options: Product | Group | Name | PriceType | PriceValue | Stock | SortOrder | Default
func (im *importer) importOption(tx *gorm.DB, row []string) error {
	group, ok := im.groups[groupKey(cell(row, 0), cell(row, 1))]
	if !ok {
		return fmt.Errorf("unknown group %q of product %q", cell(row, 1), cell(row, 0))
	}
	name := cell(row, 2)

	option := &model.Option{
		GroupID:       group.ID,
		Name:          name,
		PriceType:     model.PriceType(defaultString(cell(row, 3), string(model.PriceTypeFree))),
		PriceValue:    parseFloat(cell(row, 4)),
		StockQuantity: parseInt(cell(row, 5)),
		SortOrder:     parseInt(cell(row, 6)),
		IsDefault:     parseBool(cell(row, 7)),
		IsAvailable:   true,
	}
	if err := tx.Create(option).Error; err != nil {
		return err
	}
	im.options[optionKey(cell(row, 0), cell(row, 1), name)] = option
	return nil
}

// Variants: Product | Options (Group=Option;Group=Option) | Stock | PriceAdjustment
func (im *importer) importVariant(tx *gorm.DB, row []string) error {
	productName := cell(row, 0)
	product, ok := im.products[productName]
	if !ok {
		return fmt.Errorf("unknown product %q", productName)
	}

	var (
		optionIDs []uint
		links     []model.VariantOption
		names     []string
	)
	for _, pair := range strings.Split(cell(row, 1), ";") {
		groupName, optionName, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return fmt.Errorf("malformed option pair %q", pair)
		}
		option, found := im.options[optionKey(productName, groupName, optionName)]
		if !found {
			return fmt.Errorf("unknown option %q in group %q", optionName, groupName)
		}
		optionIDs = append(optionIDs, option.ID)
		links = append(links, model.VariantOption{OptionID: option.ID})
		names = append(names, optionName)
	}

	var existing []model.Variant
	if err := tx.Preload("Options").Where("product_id = ?", product.ID).Find(&existing).Error; err != nil {
		return err
	}
	for i := range existing {
		if catalog.SameOptionSet(existing[i].OptionIDs(), optionIDs) {
			return fmt.Errorf("duplicate option combination %q", cell(row, 1))
		}
	}

	variant := &model.Variant{
		ProductID:       product.ID,
		Name:            strings.Join(names, " / "),
		StockQuantity:   parseInt(cell(row, 2)),
		PriceAdjustment: parseFloat(cell(row, 3)),
		IsActive:        true,
		Options:         links,
	}
	if err := tx.Create(variant).Error; err != nil {
		return err
	}
	im.variantCount++
	return nil
}

func groupKey(product, group string) string {
	return product + "|" + group
}

func optionKey(product, group, option string) string {
	return product + "|" + group + "|" + option
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.ToLower(s))
	return v
}
