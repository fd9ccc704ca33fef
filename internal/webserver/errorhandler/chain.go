// Package errorhandler holds the error middleware that runs once a request
// handler has failed. Links run in the order they were attached; a link that
// returns nil has written the response, one that returns an error hands it on.
package errorhandler

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

type Link func(c *fiber.Ctx, err error) error

type Chain struct {
	mu    sync.RWMutex
	links []Link
}

func (ch *Chain) Attach(link Link) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.links = append(ch.links, link)
}

func (ch *Chain) Len() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.links)
}

// Handle is meant to be used as fiber.Config.ErrorHandler. Errors no link has
// handled end up in fiber's default handler.
func (ch *Chain) Handle(c *fiber.Ctx, err error) error {
	ch.mu.RLock()
	links := ch.links
	ch.mu.RUnlock()

	for _, link := range links {
		if err = link(c, err); err == nil {
			return nil
		}
	}
	return fiber.DefaultErrorHandler(c, err)
}
