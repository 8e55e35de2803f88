package token

// A Producer emits a token stream into a channel, typically by decoding some
// input.  It returns when it runs out of input or encounters an error.
type Producer interface {
	Produce(chan<- Token) error
}

// StartStream uses the producer to start producing tokens and returns the
// channel they are sent to.  This is always fast because the producer runs in
// a goroutine.  The channel is closed when the producer returns.
//
// As a producer can fail, a handleError function can be provided.  It is
// called before the channel is closed, so a consumer that sees the end of the
// stream can rely on the error having been reported.
func StartStream(producer Producer, handleError func(error)) <-chan Token {
	out := make(chan Token)
	go func() {
		defer close(out)
		err := producer.Produce(out)
		if err != nil && handleError != nil {
			handleError(err)
		}
	}()
	return out
}
