package channels

import (
	"sync"

	"github.com/AbdulWasayUl/country-explorer/models"
)

type Channels struct {
	DataRequest chan models.DataRequest
	WG          *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 100
	return &Channels{
		DataRequest: make(chan models.DataRequest, bufferSize),
		WG:          &sync.WaitGroup{},
	}
}

// Submit counts req as pending before queueing it, so a WG.Wait that starts
// after Submit returns always covers req.
func (c *Channels) Submit(req models.DataRequest) {
	c.WG.Add(1)
	c.DataRequest <- req
}
