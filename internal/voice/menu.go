package voice

import (
	"fmt"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/translation"
)

// MenuParam is the agent parameter carrying the catalog menu.
const MenuParam = "our_menu"

// LookupFunc resolves a translation key.
type LookupFunc func(key string, locale translation.Locale) string

// BuildMenu renders the merchant's active categories and their
// subcategories as the bilingual menu the agent navigates by.
func BuildMenu(categories []models.Category, subCategories []models.SubCategory, lookup LookupFunc) string {
	var b strings.Builder
	for _, c := range categories {
		fmt.Fprintf(&b, "**%s (%s)** (categoryId: %s)\n",
			lookup(c.NameKey, translation.English), lookup(c.NameKey, translation.Arabic), c.ID)
		for _, s := range subCategories {
			if !s.HasCategory(c.ID) {
				continue
			}
			fmt.Fprintf(&b, "  - %s (%s) (itemId: %s)\n",
				lookup(s.NameKey, translation.English), lookup(s.NameKey, translation.Arabic), s.ID)
		}
		b.WriteString("\n")
	}
	b.WriteString("If the user asks about an item, navigate to the appropriate category.\n")
	return b.String()
}

// NavigationTools are the client tools offered to the agent.
func NavigationTools() []Tool {
	return []Tool{
		{
			FunctionName: "navigate_to_category",
			Description:  "Open a category page in the storefront",
			Parameters: []ToolParameter{
				{Name: "categoryId", Type: "string", Description: "Category to open"},
			},
			Required: []string{"categoryId"},
		},
		{
			FunctionName: "navigate_to_subcategory",
			Description:  "Open a subcategory within a category",
			Parameters: []ToolParameter{
				{Name: "categoryId", Type: "string", Description: "Parent category"},
				{Name: "itemId", Type: "string", Description: "Subcategory to open"},
			},
			Required: []string{"categoryId", "itemId"},
		},
	}
}
