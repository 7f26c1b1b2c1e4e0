package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/facultyhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// NewPaginationInfo describes page (1-based) of size over totalItems. An empty
// list still reports one page.
func NewPaginationInfo(totalItems, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (totalItems + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	page = clamp(page, DefaultPage, totalPages)

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page and ?size. Without size the caller gets
// 0, meaning the whole list; the web client relies on that.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page = positiveQuery(c, "page", DefaultPage)
	if c.Query("size") == "" {
		return page, 0
	}
	size = positiveQuery(c, "size", DefaultPageSize)
	if size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

func positiveQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Paginate slices items down to one page. A size of zero returns every item
// as a single page.
func Paginate[T any](items []T, page, size int) ([]T, dto.PaginationInfo) {
	total := len(items)
	if size <= 0 {
		size, page = total, DefaultPage
		if size == 0 {
			size = DefaultPageSize
		}
	}
	if page < DefaultPage {
		page = DefaultPage
	}

	start := clamp((page-1)*size, 0, total)
	end := clamp(start+size, start, total)
	return items[start:end], NewPaginationInfo(total, page, size)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
