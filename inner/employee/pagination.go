package employee

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// PageRequest ограниченные limit и offset для LIMIT/OFFSET
type PageRequest struct {
	Limit  int
	Offset int
}

// ParsePageRequest разбирает сырые limit/offset или page/page_size.
// Если передан page, offset считается как (page-1)*size, где size берётся из page_size, а при его отсутствии из limit.
func ParsePageRequest(limit, offset, page, pageSize string) PageRequest {
	request := PageRequest{Limit: clampLimit(limit), Offset: clampOffset(offset)}

	if strings.TrimSpace(page) == "" {
		return request
	}
	if strings.TrimSpace(pageSize) != "" {
		request.Limit = clampLimit(pageSize)
	}
	pageNumber, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || pageNumber < 1 {
		pageNumber = 1
	}
	// (page-1)*limit не должно переполнять int
	if maxPage := math.MaxInt/request.Limit + 1; pageNumber > maxPage {
		pageNumber = maxPage
	}
	request.Offset = (pageNumber - 1) * request.Limit
	return request
}

func clampLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil || limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func clampOffset(raw string) int {
	offset, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// Page номер страницы (с 1), на которую попадает offset
func (r PageRequest) Page() int {
	if r.Limit <= 0 {
		return 1
	}
	return r.Offset/r.Limit + 1
}

// TotalPages max(1, ceil(total/limit))
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
