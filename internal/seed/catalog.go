package seed

import "stalltrack/m/domain"

// Catalog returns the initial product table used when no persisted catalog
// exists yet. Remaining quantity starts equal to total and revenue is
// derived from the (zero) sold quantity.
func Catalog() []domain.Product {
	rows := []domain.Product{
		{Name: "1캐릭터뱃지", TotalQuantity: 4, Price: 4000},
		{Name: "2커스터드푸딩뱃지", TotalQuantity: 2, Price: 5000},
		{Name: "3파파야푸딩뱃지", TotalQuantity: 2, Price: 5000},
		{Name: "4일반스티커", TotalQuantity: 55, Price: 3000},
		{Name: "5조각스티커", TotalQuantity: 480, Price: 1000},
		{Name: "6사각스티커", TotalQuantity: 432, Price: 500},
		{Name: "7캐릭터키링", TotalQuantity: 60, Price: 4000},
		{Name: "8비즈키링", TotalQuantity: 21, Price: 7000},
		{Name: "9떡메모지", TotalQuantity: 83, Price: 2000},
		{Name: "10엽서", TotalQuantity: 848, Price: 1000},
		{Name: "11포스터", TotalQuantity: 8, Price: 4000},
		{Name: "12비즈반지", TotalQuantity: 6, Price: 4000},
		{Name: "12비즈반지-1", TotalQuantity: 2, Price: 3300},
		{Name: "12비즈반지-2", TotalQuantity: 1, Price: 5000},
	}
	for i := range rows {
		rows[i].RemainingQuantity = rows[i].TotalQuantity
		rows[i].Revenue = rows[i].SoldQuantity * rows[i].Price
	}
	return rows
}
