package repositories

import "equaline/internal/models"

// DefaultCatalog returns the storefront's product list in display order.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Горная ледниковая вода", Price: 89, Volume: "0.5 л", Description: "Чистейшая вода из горных ледников с уникальным минеральным составом.", Category: "premium"},
		{ID: 2, Name: "Родниковая премиум", Price: 149, Volume: "1 л", Description: "Натуральная родниковая вода с уникальным минеральным составом.", Category: "premium"},
		{ID: 3, Name: "Минеральная классик", Price: 199, Volume: "1.5 л", Description: "Сбалансированная минеральная вода для ежедневного употребления.", Category: "classic"},
		{ID: 4, Name: "Артезианская элит", Price: 249, Volume: "2 л", Description: "Глубинная артезианская вода с природной фильтрацией.", Category: "premium"},
		{ID: 5, Name: "Детская вода", Price: 179, Volume: "0.33 л", Description: "Специально подготовленная вода для детей с мягким составом.", Category: "kids"},
		{ID: 6, Name: "Спортивная вода", Price: 129, Volume: "0.75 л", Description: "Вода с добавлением электролитов для активного образа жизни.", Category: "sports"},
		{ID: 7, Name: "Вода для кулера", Price: 299, Volume: "19 л", Description: "Большая бутыль для кулера с доставкой на дом.", Category: "cooler"},
		{ID: 8, Name: "Минеральная лечебная", Price: 189, Volume: "1 л", Description: "Лечебно-столовая вода с высоким содержанием минералов.", Category: "medical"},
	}
}
