package analytics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/SscSPs/expense_tracker/internal/core/domain"
	"github.com/SscSPs/expense_tracker/internal/utils"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ConvertProductsToInventory projects store products into inventory rows.
func ConvertProductsToInventory(products []domain.ShopifyProduct) []domain.InventoryItem {
	items := make([]domain.InventoryItem, 0, len(products))
	for _, p := range products {
		item := domain.InventoryItem{
			ID:       strconv.FormatInt(p.ID, 10),
			Name:     p.Title,
			Category: productCategory(p),
		}

		if len(p.Variants) > 0 {
			item.Price, _ = utils.ParseAmount(p.Variants[0].Price)
		}
		for _, v := range p.Variants {
			item.Stock += v.InventoryQuantity
		}

		if p.BodyHTML != "" {
			desc := strings.TrimSpace(htmlTagPattern.ReplaceAllString(p.BodyHTML, ""))
			item.Description = &desc
		}
		if len(p.Images) > 0 {
			src := p.Images[0].Src
			item.ImageURL = &src
		}

		items = append(items, item)
	}
	return items
}

func productCategory(p domain.ShopifyProduct) string {
	if p.ProductType != "" {
		return p.ProductType
	}
	if p.Vendor != "" {
		return p.Vendor
	}
	return UncategorizedLabel
}
