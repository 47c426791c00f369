//go:build !race

package opt

const Race_ = false
