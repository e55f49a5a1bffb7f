// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It reads both HCL native syntax (.hcl) and HCL JSON syntax
// (.json), so a plain config.json with the same attribute names is accepted
// without a separate JSON decoder.
package hcl
