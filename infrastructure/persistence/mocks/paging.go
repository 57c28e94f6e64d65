package mocks

import (
	"sort"

	"greencity/domain/shared"
)

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// paginate 截取 page 对应的窗口
func paginate[T any](items []T, page shared.PageRequest) shared.Page[T] {
	total := int64(len(items))
	start := page.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return shared.NewPage(append([]T(nil), items[start:end]...), total, page)
}
