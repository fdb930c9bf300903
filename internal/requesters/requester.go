// Package requesters собирает данные из API Wildberries: заказы обеих
// схем, продажи, отчеты реализации и карточки товаров
package requesters

import "fmt"

// errRow приводит ошибку к строке списка ошибок ответа платформе
func errRow(context string, err error) map[string]interface{} {
	return map[string]interface{}{
		"error":     true,
		"errorText": fmt.Sprintf("%s: %v", context, err),
	}
}
