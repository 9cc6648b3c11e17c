package entity

import "strings"

// EndpointResolver maps an API path such as "api/credit-cards" to a full URL.
type EndpointResolver interface {
	EndpointFor(api string) string
}

// StaticEndpoints prefixes every API path with a fixed base URL.
type StaticEndpoints struct {
	BaseURL string
}

func (e StaticEndpoints) EndpointFor(api string) string {
	if e.BaseURL == "" {
		return api
	}
	return strings.TrimRight(e.BaseURL, "/") + "/" + strings.TrimLeft(api, "/")
}
