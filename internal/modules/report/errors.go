package report

import "errors"

var ErrForbidden = errors.New("access denied")
