// Package signalctx merges the process's shutdown signals into the one
// done-channel the command entrypoint waits on. The dispatcher's recv
// loop has no suspension point of its own (spec.md §5); shutdown works by
// closing the listening socket from this done-channel's trigger, not by
// adding concurrency to per-datagram handling.
package signalctx

// Or fans multiple done-channels into one that closes as soon as any
// input does. Adapted from a general-purpose channel-combinator used
// elsewhere in this codebase's lineage, trimmed to the single function
// the shutdown path needs.
func Or(channels ...<-chan struct{}) <-chan struct{} {
	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	}

	orDone := make(chan struct{})
	go func() {
		defer close(orDone)

		switch len(channels) {
		case 2:
			select {
			case <-channels[0]:
			case <-channels[1]:
			}
		default:
			select {
			case <-channels[0]:
			case <-channels[1]:
			case <-channels[2]:
			case <-Or(append(channels[3:], orDone)...):
			}
		}
	}()

	return orDone
}
