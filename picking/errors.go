package picking

import "errors"

// ErrNoQuery is returned by TriggerAdapter.Tick when it has no action
// query to sample.
var ErrNoQuery = errors.New("picking: no action query")
