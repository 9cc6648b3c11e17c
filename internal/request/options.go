package request

import (
	"net/url"
	"strconv"
)

// Encoder turns caller supplied options into query parameters.
type Encoder interface {
	Encode() url.Values
}

// Options is the default Encoder: page, size, sort and free-form filters.
// Zero values are left out of the query string.
type Options struct {
	Page   *int
	Size   *int
	Sort   []string
	Filter map[string][]string
}

func (o Options) Encode() url.Values {
	params := url.Values{}

	for key, values := range o.Filter {
		for _, v := range values {
			if v != "" {
				params.Add(key, v)
			}
		}
	}

	if o.Page != nil {
		params.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		params.Set("size", strconv.Itoa(*o.Size))
	}
	for _, s := range o.Sort {
		params.Add("sort", s)
	}

	return params
}

// Paged is a shorthand for the common page/size/sort combination.
func Paged(page, size int, sort ...string) Options {
	return Options{Page: &page, Size: &size, Sort: sort}
}
