package mock

import "github.com/fwojciec/pagemd"

var _ pagemd.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagemd.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ pagemd.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of pagemd.Cleaner.
type Cleaner struct {
	CleanFn func(rawHTML string) (string, error)
}

func (c *Cleaner) Clean(rawHTML string) (string, error) {
	return c.CleanFn(rawHTML)
}
