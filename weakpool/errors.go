package weakpool

import "errors"

// ErrNilObject is returned by the Add family when the object is nil.
var ErrNilObject = errors.New("weakpool: nil object")
