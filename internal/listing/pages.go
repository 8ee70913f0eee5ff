package listing

// Ellipsis marks a gap in a PageWindow.
const Ellipsis = 0

const maxVisiblePages = 5

// PageWindow returns the page numbers a pager shows around current:
// every page when there are at most five, otherwise the first page, up to
// three neighbours of current, the last page, and Ellipsis where pages are
// skipped. It returns nil when there is at most one page.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 1 {
		return nil
	}

	if totalPages <= maxVisiblePages {
		pages := make([]int, totalPages)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	start := max(2, current-1)
	end := min(totalPages-1, current+1)
	if current <= 3 {
		end = min(totalPages-1, 4)
	}
	if current >= totalPages-2 {
		start = max(2, totalPages-3)
	}

	pages := []int{1}
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	if end < totalPages-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, totalPages)
}
