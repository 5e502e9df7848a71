package contract

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type (
	logPosition struct {
		block uint64
		index uint
	}

	// winnerCursor remembers how far the WinnerPicked stream has been read. Winners
	// found but not handed out yet wait in pending.
	winnerCursor struct {
		mu      sync.Mutex
		armed   bool
		from    uint64
		last    logPosition
		hasLast bool
		pending []common.Address
	}
)

func (p logPosition) after(other logPosition) bool {
	return p.block > other.block || (p.block == other.block && p.index > other.index)
}

// next pops the oldest pending winner.
func (c *winnerCursor) next() (common.Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return common.Address{}, false
	}
	winner := c.pending[0]
	c.pending = c.pending[1:]
	return winner, true
}

// resumeFrom is the first block that may hold undelivered logs; false before anything
// has been read.
func (c *winnerCursor) resumeFrom() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.from, c.armed
}

// accept queues the winner of log unless the log was already delivered.
func (c *winnerCursor) accept(log types.Log, winner common.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := logPosition{block: log.BlockNumber, index: log.Index}
	if c.hasLast && !pos.after(c.last) {
		return false
	}

	c.pending = append(c.pending, winner)
	c.last = pos
	c.hasLast = true
	return true
}

// scanned marks every block up to and including to as read.
func (c *winnerCursor) scanned(to uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.from = to + 1
	c.armed = true
}

// seen marks block as partially read; the next scan starts at it again and skips the
// logs already delivered.
func (c *winnerCursor) seen(block uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.from = block
	c.armed = true
}
