package performance

import "errors"

var ErrFutureMonth = errors.New("cannot refresh metrics for a future month")
