package pool

// fixed is a capacity-bounded object pool. At most capacity distinct
// objects are ever live across Get/Put; once that many are outstanding,
// Get blocks for a returned one instead of manufacturing another.
type fixed struct {
	available chan interface{}
	all       chan interface{}
	buf       chan interface{}
	newFn     func() interface{}
}

// NewFixed returns a BoundedPool that manufactures at most capacity
// objects via newFn, reusing returned ones thereafter.
func NewFixed(capacity uint, newFn func() interface{}) BoundedPool {
	return &fixed{
		available: make(chan interface{}, capacity),
		all:       make(chan interface{}, capacity),
		buf:       make(chan interface{}, 1024),
		newFn:     newFn,
	}
}

func (p *fixed) Get() interface{} {
	select {
	case el := <-p.available:
		return el

	case el := <-p.buf:
		return el

	default:
		var el interface{}

		if len(p.all) < cap(p.all) {
			el = p.newFn()
		} else {
			el = <-p.all
		}

		select {
		case p.all <- el:
		case p.buf <- el:
		default:
		}
		return el
	}
}

// Put returns el to the pool, abandoning it silently if every slot is
// already occupied. Callers that need to know whether el was retained
// should use TryPut.
func (p *fixed) Put(el interface{}) {
	p.TryPut(el)
}

// TryPut returns el to the pool and reports whether it was retained.
func (p *fixed) TryPut(el interface{}) bool {
	select {
	case p.available <- el:
		return true
	case p.all <- el:
		return true
	case p.buf <- el:
		return true
	default:
		return false
	}
}
