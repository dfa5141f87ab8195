package pricing

import "errors"

var ErrUnmatchedRoom = errors.New("room type not found on offer")
