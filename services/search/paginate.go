package search

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	PageSize     int  `json:"page_size"`
	TotalPages   int  `json:"total_pages"`
	HasNextPage  bool `json:"has_next_page"`
	HasPrevPage  bool `json:"has_prev_page"`
	TotalResults int  `json:"total_results"`
}

// PageOf returns the 1-based page of results. Pages past the end are empty.
func PageOf(results []Result, page int, pageSize int) ([]Result, Pagination) {
	if pageSize <= 0 {
		pageSize = len(results)
		if pageSize == 0 {
			pageSize = 1
		}
	}
	if page <= 0 {
		page = 1
	}

	offset := (page - 1) * pageSize
	pagination := calculatePagination(len(results), pageSize, offset)

	if offset >= len(results) {
		return []Result{}, pagination
	}
	return results[offset:min(offset+pageSize, len(results))], pagination
}

func calculatePagination(total, limit, offset int) Pagination {
	pageSize := limit
	currentPage := (offset / limit) + 1
	totalPages := (total + pageSize - 1) / pageSize

	if totalPages == 0 {
		totalPages = 1
	}

	return Pagination{
		CurrentPage:  currentPage,
		PageSize:     pageSize,
		TotalPages:   totalPages,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
		TotalResults: total,
	}
}
