//go:build !unix

package bin

import (
	"github.com/mwehr/binfile/errors"
)

func flock(fd int) error {
	return errors.Errorf("advisory locks are not supported on this platform")
}

func funlock(fd int) error {
	return errors.Errorf("advisory locks are not supported on this platform")
}
