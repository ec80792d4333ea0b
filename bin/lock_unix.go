//go:build unix

package bin

import (
	"golang.org/x/sys/unix"
)

func flock(fd int) error {
	return unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
}

func funlock(fd int) error {
	return unix.Flock(fd, unix.LOCK_UN)
}
