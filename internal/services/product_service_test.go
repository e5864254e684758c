package services_test

import (
	"fmt"
	"testing"

	"equaline/internal/models"
	"equaline/internal/repositories"
	"equaline/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

// testCatalog mirrors the storefront's seed list.
func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Горная ледниковая вода", Price: 89, Volume: "0.5 л", Description: "Чистейшая вода из горных ледников.", Category: "premium"},
		{ID: 2, Name: "Родниковая премиум", Price: 149, Volume: "1 л", Description: "Натуральная родниковая вода.", Category: "premium"},
		{ID: 3, Name: "Минеральная классик", Price: 199, Volume: "1.5 л", Description: "Сбалансированная минеральная вода.", Category: "classic"},
		{ID: 4, Name: "Артезианская элит", Price: 249, Volume: "2 л", Description: "Глубинная артезианская вода.", Category: "premium"},
		{ID: 5, Name: "Детская вода", Price: 179, Volume: "0.33 л", Description: "Вода для детей с мягким составом.", Category: "kids"},
		{ID: 6, Name: "Спортивная вода", Price: 129, Volume: "0.75 л", Description: "Вода с электролитами.", Category: "sports"},
		{ID: 7, Name: "Вода для кулера", Price: 299, Volume: "19 л", Description: "Большая бутыль для кулера.", Category: "cooler"},
		{ID: 8, Name: "Минеральная лечебная", Price: 189, Volume: "1 л", Description: "Лечебно-столовая вода.", Category: "medical"},
	}
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, catalog, services.FilterProducts(catalog, ""), "empty query keeps the full catalog in order")
	assert.Equal(t, services.FilterProducts(catalog, "вода"), services.FilterProducts(catalog, "ВОДА"))
	assert.Equal(t, []int{2, 8}, ids(services.FilterProducts(catalog, "1 л")), "volume is searched")
	assert.Equal(t, []int{3, 8}, ids(services.FilterProducts(catalog, "минеральн")))
	assert.Equal(t, []int{6}, ids(services.FilterProducts(catalog, "ЭЛЕКТРОЛИТ")), "description is searched")
	assert.Empty(t, services.FilterProducts(catalog, "кофе"))
}

func TestSortProducts(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, []int{1, 6, 2, 5, 8, 3, 4, 7}, ids(services.SortProducts(catalog, services.SortPriceAsc)))
	assert.Equal(t, []int{5, 1, 6, 2, 8, 3, 4, 7}, ids(services.SortProducts(catalog, services.SortVolumeAsc)))
	assert.Equal(t, []int{7, 4, 3, 2, 8, 6, 1, 5}, ids(services.SortProducts(catalog, services.SortVolumeDesc)), "equal volumes keep catalog order")
	assert.Equal(t, []int{4, 7, 1, 5, 3, 8, 2, 6}, ids(services.SortProducts(catalog, services.SortNameAsc)))
	assert.Equal(t, []int{6, 2, 8, 3, 5, 1, 7, 4}, ids(services.SortProducts(catalog, services.SortNameDesc)))
	assert.Equal(t, ids(catalog), ids(services.SortProducts(catalog, "popularity")))

	// sorting never touches the input
	assert.Equal(t, testCatalog(), catalog)
}

func TestSortProducts_PriceDescReversesPriceAsc(t *testing.T) {
	visible := services.FilterProducts(testCatalog(), "вода")

	asc := ids(services.SortProducts(visible, services.SortPriceAsc))
	desc := ids(services.SortProducts(services.SortProducts(visible, services.SortPriceAsc), services.SortPriceDesc))

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestParseVolume(t *testing.T) {
	tests := map[string]float64{
		"0.5 л":   0.5,
		"19 л":    19,
		"1.5 л":   1.5,
		"0.33 л":  0.33,
		"1 л":     1,
		"л":       0,
		"":        0,
		"1.5.2 л": 1.5,
		".5 л":    0.5,
	}
	for in, want := range tests {
		assert.InDelta(t, want, services.ParseVolume(in), 1e-9, in)
	}
	assert.Less(t, services.ParseVolume("1.5 л"), services.ParseVolume("19 л"), "numeric, not lexicographic")
}

func TestProductIcon(t *testing.T) {
	want := map[int]string{
		1: "iceberg",
		2: "trees",
		3: "recycle",
		4: "earth",
		5: "handsWater",
		6: "bulbLeaves",
		7: "gearLeaf",
		8: "recycle",
	}
	for _, p := range testCatalog() {
		assert.Equal(t, want[p.ID], services.ProductIcon(p), p.Name)
	}
	assert.Equal(t, "dropEnergy", services.ProductIcon(models.Product{Name: "Лечебная", Category: "medical"}))
	assert.Equal(t, "recycle", services.ProductIcon(models.Product{Name: "Unknown"}))
}

func TestProductService_Browse(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return(testCatalog(), nil).Once()
	products, err := service.Browse("минеральн", services.SortPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 8}, ids(products))
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetAll").Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.Browse("", "")
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	repo, err := repositories.NewCatalogRepository(testCatalog())
	require.NoError(t, err)
	service := services.NewProductService(repo)

	product, err := service.GetProductByID(7)
	require.NoError(t, err)
	assert.Equal(t, "19 л", product.Volume)

	_, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	all, err := service.GetAllProducts()
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
