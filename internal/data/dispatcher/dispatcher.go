package dispatcher

import (
	"bytes"
	"io"

	"github.com/atomicstack/swipekbd/internal/backend"
	"github.com/atomicstack/swipekbd/internal/logging/events"
)

type Result struct {
	DictionaryReloaded bool
	Words              int
	Err                error
}

// DictionaryStore accepts a replacement word list.
type DictionaryStore interface {
	Load(r io.Reader) error
	Len() int
}

// Cache is anything holding results derived from the dictionary.
type Cache interface {
	Invalidate()
}

type Dispatcher struct {
	dict  DictionaryStore
	cache Cache
}

// New returns a dispatcher applying reloads to dict. cache may be nil.
func New(dict DictionaryStore, cache Cache) *Dispatcher {
	return &Dispatcher{dict: dict, cache: cache}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindDictionary:
		file, _ := evt.Data.(backend.DictionaryFile)
		if evt.Err != nil {
			events.Dictionary.Error(file.Path, evt.Err)
			res.Err = evt.Err
			return res
		}
		if err := d.dict.Load(bytes.NewReader(file.Content)); err != nil {
			events.Dictionary.Error(file.Path, err)
			res.Err = err
			return res
		}
		if d.cache != nil {
			d.cache.Invalidate()
		}
		res.DictionaryReloaded = true
		res.Words = d.dict.Len()
		events.Dictionary.Reload(file.Path, res.Words)
	}
	return res
}
