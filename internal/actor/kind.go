package actor

import "fmt"

// Kind names a behavior variant. The set is closed.
type Kind int

const (
	KindInvalid Kind = iota
	KindInputPaddle
	KindAIPaddle
	KindDistort
	KindGravityWell
	KindGravityAttract
	KindConfine
	KindExpiry
	KindKillOnCollide
	KindLaunch
	kindEnd
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindInputPaddle:    "input-paddle",
	KindAIPaddle:       "ai-paddle",
	KindDistort:        "distort",
	KindGravityWell:    "gravity-well",
	KindGravityAttract: "gravity-attract",
	KindConfine:        "confine",
	KindExpiry:         "expiry",
	KindKillOnCollide:  "kill-on-collide",
	KindLaunch:         "launch",
}

func (k Kind) Valid() bool { return k > KindInvalid && k < kindEnd }

func (k Kind) String() string {
	if k >= KindInvalid && k < kindEnd {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every valid behavior kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindEnd-1)
	for k := KindInvalid + 1; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}
