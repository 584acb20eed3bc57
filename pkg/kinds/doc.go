// Package kinds provides the built-in value types: text, number, boolean,
// URI and page. Register adds all of them to a value.Factory.
package kinds
