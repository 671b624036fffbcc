// export_test.go exports private functions for white-box testing.
package cache

// KeyHash exposes the record name of a key.
var KeyHash = keyHash
