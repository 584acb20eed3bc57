// Package value implements the typed dual-representation value used by the
// semantic data layer.
//
// A Value has a user-facing textual form and a compact internal form, the
// internal keys, that storage sorts and compares. The concrete encoding of
// each value type lives in a Kind; the Value state machine around it owns
// ingestion, lazy parsing of stored keys, error accumulation, allowed-value
// checking and link derivation.
//
// Lifecycle:
//
//	v, _ := factory.New("_num")
//	v.SetUserValue("5 km", "")   // parse now, check allowed values
//	v.SetKeys([]string{"5", "km"}) // stub; parsed on first use
//	v.IsValid()                  // unstubs if needed
//
// A Value is not safe for concurrent use. A Factory is safe for concurrent
// use once all kinds are registered.
package value
