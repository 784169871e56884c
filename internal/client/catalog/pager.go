package catalog

// PagerWidth is the number of page buttons the pager shows.
const PagerWidth = 5

// TotalPages is ceil(total/size); 0 for an empty listing.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageWindow returns the page numbers shown around current: at most width
// consecutive pages, kept inside 1..total and centred on current when
// possible.
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	n := min(width, total)
	half := width / 2

	var first int
	switch {
	case total <= width:
		first = 1
	case current <= half+1:
		first = 1
	case current >= total-half:
		first = total - width + 1
	default:
		first = current - half
	}

	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}
	return out
}
