package glapi

import (
	"errors"
	"fmt"
)

var ErrIncompleteFramebuffer = errors.New("incomplete framebuffer")

func incompleteFramebuffer(status uint32) error {
	return fmt.Errorf("%w: status 0x%04x", ErrIncompleteFramebuffer, status)
}
