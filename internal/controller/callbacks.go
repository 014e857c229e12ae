package controller

// Callbacks is how a front end learns about a running scan. Every method is
// invoked from the scan's collector goroutine, one call at a time, never
// from the goroutine that called Start. Implementations that drive a UI
// must hand the values over to their own loop.
type Callbacks interface {
	OnProgress(filesProcessed, filesFound int)
	OnFileMatched(path string, matchCount int)
	OnError(message string)
	OnCompleted(totalMatched int)
}

// CallbackFuncs adapts optional functions to Callbacks. Nil fields are
// skipped.
type CallbackFuncs struct {
	Progress  func(filesProcessed, filesFound int)
	Matched   func(path string, matchCount int)
	Error     func(message string)
	Completed func(totalMatched int)
}

func (f CallbackFuncs) OnProgress(filesProcessed, filesFound int) {
	if f.Progress != nil {
		f.Progress(filesProcessed, filesFound)
	}
}

func (f CallbackFuncs) OnFileMatched(path string, matchCount int) {
	if f.Matched != nil {
		f.Matched(path, matchCount)
	}
}

func (f CallbackFuncs) OnError(message string) {
	if f.Error != nil {
		f.Error(message)
	}
}

func (f CallbackFuncs) OnCompleted(totalMatched int) {
	if f.Completed != nil {
		f.Completed(totalMatched)
	}
}

// multi fans every call out to several Callbacks in order
type multi []Callbacks

// Multi combines callbacks; each receives every event in order.
func Multi(cbs ...Callbacks) Callbacks {
	var m multi
	for _, cb := range cbs {
		if cb != nil {
			m = append(m, cb)
		}
	}
	return m
}

func (m multi) OnProgress(filesProcessed, filesFound int) {
	for _, cb := range m {
		cb.OnProgress(filesProcessed, filesFound)
	}
}

func (m multi) OnFileMatched(path string, matchCount int) {
	for _, cb := range m {
		cb.OnFileMatched(path, matchCount)
	}
}

func (m multi) OnError(message string) {
	for _, cb := range m {
		cb.OnError(message)
	}
}

func (m multi) OnCompleted(totalMatched int) {
	for _, cb := range m {
		cb.OnCompleted(totalMatched)
	}
}
