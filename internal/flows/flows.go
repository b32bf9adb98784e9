// Package flows implements the sibling generation flows: each one is a
// single structured AI call (or a two-call variant) over the same
// provider client the document pipeline uses.
package flows

import (
	"docai/api/internal/ai"
)

type Service struct {
	client ai.Client
}

func New(client ai.Client) *Service {
	return &Service{client: client}
}
