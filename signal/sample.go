package signal

// A TickSample captures every wire of the decoupler interface as observed at
// one tick's evaluation point: the producer-driven ingress pair, the
// consumer-driven ready line, and the decoupler's own derived outputs.
// The scoreboard consumes one sample per tick.
type TickSample struct {
	// Tick is the cycle number the sample was taken at.
	Tick uint64

	// Ingress channel: producer drives RxValid/RxData, the decoupler
	// drives RxReady.
	RxValid bool
	RxData  Word
	RxReady bool

	// Egress channel: the decoupler drives TxValid/TxData, the consumer
	// drives TxReady.
	TxValid bool
	TxData  Word
	TxReady bool

	// Control lines sampled at this tick.
	Clear bool
	Reset bool
}

// IngressTransfer reports whether a word is accepted on ingress at this tick.
func (s TickSample) IngressTransfer() bool {
	return s.RxValid && s.RxReady
}

// EgressTransfer reports whether a word is accepted on egress at this tick.
func (s TickSample) EgressTransfer() bool {
	return s.TxValid && s.TxReady
}
