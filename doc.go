// Package jsvalue implements an immutable model of JSON values and converts
// it to and from token streams.
//
// The package is organized into several sub-packages:
//
//   - token: tokens, token sources (pull) and sinks (push)
//   - encoding/json: JSON tokenizer and writer
//   - encoding/jsontext: token source backed by a jsontext.Decoder
//   - encoding/jsoniter: compact JSON writer backed by a jsoniter.Stream
//   - encoding/csv: CSV tokenizer
//   - encoding/jpv: JPV (JSON Path-Value) tokenizer and writer
//
// Decode builds a Value from a token source and Encode writes a Value to a
// token sink:
//
//	src -> Decode -> Value -> Encode -> sink
//
// Neither recurses, so the nesting depth of a value is only limited by
// memory.  Objects keep their fields in input order, including duplicate
// names, and numbers are arbitrary precision decimals.
//
// Values can also be registered with a framework that looks up a
// Deserializer or Serializer by Go type (see Register), and they implement
// json.Marshaler so they can be embedded in structs handled by the standard
// library encoding/json package.
//
// The CLI utility is in the directory cmd/jsv. You can install it with:
//
//	go install github.com/arnodel/jsvalue/cmd/jsv
package jsvalue
