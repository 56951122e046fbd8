package aco

import "math/rand"

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer so neighbouring ants get uncorrelated streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// antStreams returns one generator per ant. base is read exactly once, so
// the streams depend only on its state and not on how ants are scheduled.
func antStreams(base *rand.Rand, ants int) []*rand.Rand {
	parent := base.Int63()

	streams := make([]*rand.Rand, ants)
	for k := range streams {
		streams[k] = rand.New(rand.NewSource(deriveSeed(parent, uint64(k))))
	}

	return streams
}
