package instances

import "sync"

// Connecting guarda os ids de instâncias com conexão em andamento. Ids
// diferentes conectam em paralelo; o mesmo id só uma vez.
type Connecting struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewConnecting() *Connecting {
	return &Connecting{ids: make(map[string]struct{})}
}

func (c *Connecting) TryStart(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.ids[id]; busy {
		return false
	}
	c.ids[id] = struct{}{}
	return true
}

func (c *Connecting) Done(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, id)
}

func (c *Connecting) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.ids[id]
	return busy
}
