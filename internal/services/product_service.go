package services

import (
	"slices"
	"strconv"
	"strings"

	"equaline/internal/models"
	"equaline/internal/repositories"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of the visible product list.
type SortKey string

const (
	SortNameAsc    SortKey = "name-asc"
	SortNameDesc   SortKey = "name-desc"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortVolumeAsc  SortKey = "volume-asc"
	SortVolumeDesc SortKey = "volume-desc"
)

// ProductService handles catalog browsing.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products in catalog order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Browse filters the catalog by query and then sorts what is left.
func (s *ProductService) Browse(query string, sortKey SortKey) ([]models.Product, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	return SortProducts(FilterProducts(products, query), sortKey), nil
}

// FilterProducts keeps the products whose name, description or volume
// contains query, ignoring case. Catalog order is preserved.
func FilterProducts(products []models.Product, query string) []models.Product {
	term := strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Volume), term) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a sorted copy of products. Equal elements keep their
// relative order; an unknown key returns the copy unsorted.
func SortProducts(products []models.Product, key SortKey) []models.Product {
	out := slices.Clone(products)

	var cmp func(a, b models.Product) int
	switch key {
	case SortNameAsc, SortNameDesc:
		// A Collator keeps internal buffers, so each sort gets its own.
		c := collate.New(language.Russian)
		cmp = func(a, b models.Product) int { return c.CompareString(a.Name, b.Name) }
	case SortPriceAsc, SortPriceDesc:
		cmp = func(a, b models.Product) int { return a.Price - b.Price }
	case SortVolumeAsc, SortVolumeDesc:
		cmp = func(a, b models.Product) int {
			va, vb := ParseVolume(a.Volume), ParseVolume(b.Volume)
			switch {
			case va < vb:
				return -1
			case va > vb:
				return 1
			}
			return 0
		}
	default:
		return out
	}

	if key == SortNameDesc || key == SortPriceDesc || key == SortVolumeDesc {
		asc := cmp
		cmp = func(a, b models.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// ParseVolume extracts the numeric magnitude of a volume label such as
// "1.5 л". Everything but digits and dots is dropped and the longest leading
// decimal number is parsed. A label without digits yields 0.
func ParseVolume(volume string) float64 {
	var b strings.Builder
	seenDot := false
	for _, r := range volume {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if seenDot {
				// a second dot ends the leading number
				return parseLeading(b.String())
			}
			seenDot = true
			b.WriteRune(r)
		}
	}
	return parseLeading(b.String())
}

func parseLeading(s string) float64 {
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "." {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ProductIcon picks the display icon for a product from its category and name.
func ProductIcon(p models.Product) string {
	name := strings.ToLower(p.Name)
	category := strings.ToLower(p.Category)

	switch {
	case category == "premium" && strings.Contains(name, "ледник"):
		return "iceberg"
	case category == "premium" && strings.Contains(name, "родник"):
		return "trees"
	case category == "classic" || strings.Contains(name, "минерал"):
		return "recycle"
	case category == "premium" || strings.Contains(name, "артези"):
		return "earth"
	case category == "kids" || strings.Contains(name, "дет"):
		return "handsWater"
	case category == "sports" || strings.Contains(name, "спорт"):
		return "bulbLeaves"
	case category == "cooler" || strings.Contains(name, "кулер"):
		return "gearLeaf"
	case category == "medical" || strings.Contains(name, "лечеб"):
		return "dropEnergy"
	}
	return "recycle"
}
