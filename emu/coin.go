package emu

// CoinBookkeeper receives the coin counter lines.
type CoinBookkeeper interface {
	CoinCounter(num int, state bool)
}

// CoinCounters counts rising edges on the two coin counter lines.
type CoinCounters struct {
	Counts [2]uint32
	level  [2]bool
}

// CoinCounter implements CoinBookkeeper.
func (c *CoinCounters) CoinCounter(num int, state bool) {
	if num < 0 || num >= len(c.Counts) {
		return
	}
	if state && !c.level[num] {
		c.Counts[num]++
	}
	c.level[num] = state
}

// connectCoinLatch wires the coin latch outputs to a bookkeeper. The board
// routes the lockout outputs, inverted, to the same counter inputs.
func connectCoinLatch(l *Latch259, bk CoinBookkeeper) {
	l.Connect(coinLatchCounter1, func(s bool) { bk.CoinCounter(0, s) })
	l.Connect(coinLatchCounter2, func(s bool) { bk.CoinCounter(1, s) })
	l.Connect(coinLatchLockout1, func(s bool) { bk.CoinCounter(0, !s) })
	l.Connect(coinLatchLockout2, func(s bool) { bk.CoinCounter(1, !s) })
}
