package main

import "github.com/consensys/gnark/frontend"

// fixtureCircuit is a minimal placeholder circuit used only to produce
// structurally-real groth16 artifacts (vk/pk/proof) for exercising the
// verification facade's header validation and gnark dispatch in tests.
// It is deliberately not one of the three statement circuits; those
// stay out of scope. This one exists purely so fixturegen has something
// real to compile, prove, and export.
type fixtureCircuit struct {
	Commitment frontend.Variable `gnark:",public"`
	Blinding   frontend.Variable
}

// Define asserts Commitment == Blinding, the simplest possible relation
// that still requires a genuine witness to satisfy.
func (c *fixtureCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Commitment, c.Blinding)
	return nil
}
