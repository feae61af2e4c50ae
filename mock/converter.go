package mock

import "github.com/fwojciec/knowbase"

var _ knowbase.Converter = (*Converter)(nil)

// Converter is a mock implementation of knowbase.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
