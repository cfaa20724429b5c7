package dispatchers

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/maxsupermanhd/WorldRaster/primitives"
)

// KeyedErrors collects at most one error per region, last writer wins
type KeyedErrors struct {
	mu   sync.Mutex
	errs map[primitives.RegionLocation]error
}

func NewKeyedErrors() *KeyedErrors {
	return &KeyedErrors{errs: map[primitives.RegionLocation]error{}}
}

func (k *KeyedErrors) Set(loc primitives.RegionLocation, err error) {
	k.mu.Lock()
	k.errs[loc] = err
	k.mu.Unlock()
}

func (k *KeyedErrors) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.errs)
}

// Err returns nil or *AggregateError with a snapshot of collected errors
func (k *KeyedErrors) Err() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.errs) == 0 {
		return nil
	}
	ret := &AggregateError{Errors: make([]RegionError, 0, len(k.errs))}
	for loc, err := range k.errs {
		ret.Errors = append(ret.Errors, RegionError{Region: loc, Err: err})
	}
	sort.Slice(ret.Errors, func(i, j int) bool {
		return ret.Errors[i].Region.Less(ret.Errors[j].Region)
	})
	return ret
}

type RegionError struct {
	Region primitives.RegionLocation
	Err    error
}

// AggregateError holds errors of several regions ordered by region
type AggregateError struct {
	Errors []RegionError
}

// Error reports the error of the first region only, see Multi for all of them
func (e *AggregateError) Error() string {
	return e.Errors[0].Err.Error()
}

func (e *AggregateError) Unwrap() []error {
	ret := make([]error, len(e.Errors))
	for i, v := range e.Errors {
		ret[i] = v.Err
	}
	return ret
}

func (e *AggregateError) Regions() []primitives.RegionLocation {
	ret := make([]primitives.RegionLocation, len(e.Errors))
	for i, v := range e.Errors {
		ret[i] = v.Region
	}
	return ret
}

func (e *AggregateError) Multi() *multierror.Error {
	var ret *multierror.Error
	for _, v := range e.Errors {
		ret = multierror.Append(ret, v.Err)
	}
	return ret
}
