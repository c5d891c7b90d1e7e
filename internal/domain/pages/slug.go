package pages

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a page title.
// Example: "Yoga Class Tickets" -> "yoga-class-tickets"
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "page"
	}
	return base
}

// EnsurePageSlug ensures page.Slug exists and is persisted. The page id is
// appended to the base so slugs stay unique without retry loops.
// Must be called AFTER the page has an ID (after Create).
func EnsurePageSlug(db *gorm.DB, page *CheckoutPage) (string, error) {
	if page == nil {
		return "", fmt.Errorf("page is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if strings.TrimSpace(page.Slug) != "" {
		return strings.TrimSpace(page.Slug), nil
	}

	if page.ID == 0 {
		return "", fmt.Errorf("page ID missing (call EnsurePageSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(page.Title), page.ID)
	page.Slug = slug

	if err := db.
		Model(&CheckoutPage{}).
		Where("id = ?", page.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}

	return slug, nil
}
