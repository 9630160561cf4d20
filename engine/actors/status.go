package actors

import "sync"

var terminateChan chan struct{}
var waitGroup = &sync.WaitGroup{}

func SetTerminateChan(term chan struct{}) {
	terminateChan = term
}

func GetTerminateChan() chan struct{} {
	return terminateChan
}

// GetWaitGroup tracks minds that still have state to flush after terminate is closed.
func GetWaitGroup() *sync.WaitGroup {
	return waitGroup
}
