package utils

import (
	"fmt"
	"net/http"
)

// Page is an offset/limit window over a sorted list.
type Page struct {
	Page int
	Size int
}

// ParsePage 读取 page/size 查询参数。page、size 必须 >= 1，size 超过上限时截断
func ParsePage(r *http.Request, defaultSize, maxSize int) (Page, error) {
	page, err := GetIntQueryParam(r, "page", 1)
	if err != nil || page < 1 {
		return Page{}, fmt.Errorf("page must be an integer >= 1")
	}
	size, err := GetIntQueryParam(r, "size", defaultSize)
	if err != nil || size < 1 {
		return Page{}, fmt.Errorf("size must be an integer >= 1")
	}
	if size > maxSize {
		size = maxSize
	}
	return Page{Page: page, Size: size}, nil
}

// Paginate returns the items of the requested page; out-of-range pages are empty.
func Paginate[T any](items []T, p Page) []T {
	if p.Size < 1 || p.Page < 1 {
		return []T{}
	}
	// 先按页数比较，避免 (page-1)*size 溢出
	if p.Page-1 >= (len(items)+p.Size-1)/p.Size {
		return []T{}
	}
	start := (p.Page - 1) * p.Size
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
