//go:build hwspin_cachelinesize_32

package opt

// CacheLineSize_ is forced via the hwspin_cachelinesize_32 build tag.
const CacheLineSize_ = 32
