// Package domain contains the food-sharing entities (listings and the
// requests claiming them) together with their JSON and BSON encodings.
// It depends on nothing but the BSON primitives used as document identifiers.
package domain
