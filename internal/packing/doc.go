// Package packing implements a deterministic 3D bin-packing heuristic based on
// extreme points: candidate origins derived from the corners of already-placed
// cargo. It provides the Item and Bin primitives, the greedy Packer search, and
// the Container abstraction that specialized container types build on.
package packing
